package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qrave1/RoomSync/internal/application/config"
	"github.com/qrave1/RoomSync/internal/domain/events"
	"github.com/qrave1/RoomSync/internal/domain/models"
	"github.com/qrave1/RoomSync/internal/infra/adapters/memory"
)

type recordingStore struct {
	mu sync.Mutex

	upserts  []string
	removals []string
	messages []*models.ChatMessage

	// rows - итоговое состояние таблицы участников
	rows map[string]bool
	// upsertDelay имитирует медленное хранилище
	upsertDelay time.Duration

	err error
}

func (s *recordingStore) UpsertParticipant(_ context.Context, roomID string, p *models.Participant) error {
	time.Sleep(s.upsertDelay)

	s.mu.Lock()
	defer s.mu.Unlock()

	key := roomID + "/" + p.ConnectionID
	s.upserts = append(s.upserts, key)

	if s.err == nil {
		s.rows[key] = true
	}
	return s.err
}

func (s *recordingStore) RemoveParticipant(_ context.Context, roomID, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := roomID + "/" + connectionID
	s.removals = append(s.removals, key)

	if s.err == nil {
		delete(s.rows, key)
	}
	return s.err
}

func (s *recordingStore) AppendMessage(_ context.Context, msg *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	return s.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type harness struct {
	t *testing.T

	uc        SignalingUsecase
	conns     memory.ConnectionRepository
	rooms     memory.RoomRepository
	store     *recordingStore
	persister *Persister
	clock     *fakeClock

	byID map[string]*memory.Connection
}

func newHarness(t *testing.T, policy string) *harness {
	t.Helper()

	h := &harness{
		t:         t,
		conns:     memory.NewConnectionRepository(),
		rooms:     memory.NewRoomRepository(),
		store:     &recordingStore{rows: make(map[string]bool)},
		persister: NewPersister(time.Second),
		clock:     &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)},
		byID:      make(map[string]*memory.Connection),
	}

	cfg := &config.Config{ControlPolicy: policy, ChatMaxLength: 20}
	h.uc = NewSignalingUsecase(cfg, h.conns, h.rooms, h.store, h.store, h.persister, h.clock.Now)

	return h
}

// connect регистрирует соединение и выбрасывает приветствие
func (h *harness) connect(ids ...string) {
	for _, id := range ids {
		h.connectAs(id, "")
	}
}

func (h *harness) connectAs(id, userID string) {
	conn := memory.NewConnection(id, userID, 128)
	h.conns.Add(conn)
	h.byID[id] = conn

	h.uc.HandleConnect(context.Background(), id)
	h.drain(id)
}

func (h *harness) drain(id string) []events.Message {
	h.t.Helper()

	var out []events.Message
	for {
		select {
		case b, ok := <-h.byID[id].Send():
			if !ok {
				return out
			}

			var msg events.Message
			require.NoError(h.t, json.Unmarshal(b, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func (h *harness) drainAll() {
	for id := range h.byID {
		h.drain(id)
	}
}

func (h *harness) hostJoin(connID, roomID, name string) {
	h.t.Helper()

	require.NoError(h.t, h.uc.HandleJoin(context.Background(), connID, events.JoinEvent{
		RoomID: roomID,
		UserID: "u-" + connID,
		Name:   name,
		IsHost: true,
	}))
}

func (h *harness) requestJoin(connID, roomID, name string) {
	h.t.Helper()

	require.NoError(h.t, h.uc.HandleJoin(context.Background(), connID, events.JoinEvent{
		RoomID: roomID,
		UserID: "u-" + connID,
		Name:   name,
	}))
}

func (h *harness) accept(hostID, roomID, targetID string) {
	h.t.Helper()

	require.NoError(h.t, h.uc.HandleAcceptRequest(context.Background(), hostID, events.TargetEvent{
		RoomID:   roomID,
		TargetID: targetID,
	}))
}

// admitted сажает в комнату хоста и остальных через заявку и принятие, очищая очереди
func (h *harness) admitted(roomID string, hostID string, others ...string) {
	h.t.Helper()

	h.connect(append([]string{hostID}, others...)...)
	h.hostJoin(hostID, roomID, "name-"+hostID)

	for _, id := range others {
		h.requestJoin(id, roomID, "name-"+id)
		h.accept(hostID, roomID, id)
	}

	h.drainAll()
}

func (h *harness) room(id string) *models.Room {
	h.t.Helper()

	room, ok := h.rooms.Get(id)
	require.True(h.t, ok, "room %s not found", id)

	return room
}

func (h *harness) waitPersisted() {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(h.t, h.persister.Wait(ctx))
}

func typesOf(msgs []events.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Type)
	}

	return out
}

func find(t *testing.T, msgs []events.Message, eventType string) events.Message {
	t.Helper()

	for _, m := range msgs {
		if m.Type == eventType {
			return m
		}
	}

	t.Fatalf("no %s event in %v", eventType, typesOf(msgs))
	return events.Message{}
}

func dataOf[T any](t *testing.T, msg events.Message) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(msg.Data, &v))

	return v
}
