package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/qrave1/RoomSync/internal/application/config"
	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/domain/events"
	"github.com/qrave1/RoomSync/internal/domain/models"
	"github.com/qrave1/RoomSync/internal/infra/adapters/memory"
	"github.com/qrave1/RoomSync/internal/infra/adapters/postgres/repository"
)

// SignalingUsecase - вся логика комнат. Методы Handle* вызываются только из EventLoop.
// Ошибка возвращается лишь на некорректный ввод, нарушения протокола и прав тихо отбрасываются.
type SignalingUsecase interface {
	HandleConnect(ctx context.Context, connID string)
	HandleDisconnect(ctx context.Context, connID string)

	HandleJoin(ctx context.Context, connID string, e events.JoinEvent) error
	HandleJoinRequest(ctx context.Context, connID string, e events.JoinEvent) error
	HandleAcceptRequest(ctx context.Context, connID string, e events.TargetEvent) error
	HandleRejectRequest(ctx context.Context, connID string, e events.TargetEvent) error
	HandleRemoveParticipant(ctx context.Context, connID string, e events.TargetEvent) error
	HandleLeave(ctx context.Context, connID string, e events.RoomEvent) error

	HandleSignal(ctx context.Context, connID, kind string, e events.SignalEvent) error
	HandleToggleMedia(ctx context.Context, connID string, e events.ToggleMediaEvent) error

	HandleScreenShareStart(ctx context.Context, connID string, e events.RoomEvent) error
	HandleScreenShareStop(ctx context.Context, connID string, e events.RoomEvent) error
	HandleRequestControl(ctx context.Context, connID string, e events.ControlEvent) error
	HandleGrantControl(ctx context.Context, connID string, e events.ControlEvent) error
	HandleDenyControl(ctx context.Context, connID string, e events.ControlEvent) error

	HandleWatchSetURL(ctx context.Context, connID string, e events.WatchURLEvent) error
	HandleWatchPlay(ctx context.Context, connID string, e events.WatchPositionEvent) error
	HandleWatchPause(ctx context.Context, connID string, e events.WatchPositionEvent) error
	HandleWatchSeek(ctx context.Context, connID string, e events.WatchPositionEvent) error
	HandleWatchTimeUpdate(ctx context.Context, connID string, e events.WatchPositionEvent) error
	HandleWatchRequestSync(ctx context.Context, connID string, e events.RoomEvent) error
	HandleWatchStop(ctx context.Context, connID string, e events.RoomEvent) error

	HandleChatMessage(ctx context.Context, connID string, e events.ChatEvent) error
	HandlePing(ctx context.Context, connID string)

	// SendError отвечает соединению событием error
	SendError(connID string, err error)

	// SyncState - снимок просмотра с позицией на текущий момент
	SyncState(roomID string) (models.WatchPartySnapshot, bool)
}

type signalingUsecase struct {
	connRepo memory.ConnectionRepository
	roomRepo memory.RoomRepository

	membershipRepo repository.MembershipRepository
	chatRepo       repository.ChatRepository
	persister      *Persister

	strictControl bool
	chatMaxLength int

	now func() time.Time
}

func NewSignalingUsecase(
	cfg *config.Config,
	connRepo memory.ConnectionRepository,
	roomRepo memory.RoomRepository,
	membershipRepo repository.MembershipRepository,
	chatRepo repository.ChatRepository,
	persister *Persister,
	now func() time.Time,
) SignalingUsecase {
	return &signalingUsecase{
		connRepo:       connRepo,
		roomRepo:       roomRepo,
		membershipRepo: membershipRepo,
		chatRepo:       chatRepo,
		persister:      persister,
		strictControl:  cfg.ControlPolicy != config.ControlPolicyPermissive,
		chatMaxLength:  cfg.ChatMaxLength,
		now:            now,
	}
}

func (s *signalingUsecase) HandleConnect(_ context.Context, connID string) {
	s.send(connID, events.Connected, events.ConnectedEvent{ConnectionID: connID})
}

func (s *signalingUsecase) HandlePing(_ context.Context, connID string) {
	s.send(connID, events.Pong, nil)
}

func (s *signalingUsecase) SendError(connID string, err error) {
	s.send(connID, events.Error, events.ErrorEvent{Message: err.Error()})
}

func (s *signalingUsecase) SyncState(roomID string) (models.WatchPartySnapshot, bool) {
	room, ok := s.roomRepo.Get(roomID)
	if !ok || room.WatchParty == nil {
		return models.WatchPartySnapshot{}, false
	}

	return room.WatchParty.Snapshot(s.now()), true
}

// send кодирует событие и кладёт его в очередь одного соединения
func (s *signalingUsecase) send(connID, eventType string, data any) {
	payload, err := events.Encode(eventType, data)
	if err != nil {
		slog.Error("encode event", slog.String(constant.EventType, eventType), slog.Any(constant.Error, err))
		return
	}

	s.connRepo.Write(connID, payload)
}

// broadcast рассылает событие всем участникам комнаты, кроме exclude
func (s *signalingUsecase) broadcast(room *models.Room, exclude, eventType string, data any) {
	payload, err := events.Encode(eventType, data)
	if err != nil {
		slog.Error("encode event", slog.String(constant.EventType, eventType), slog.Any(constant.Error, err))
		return
	}

	for _, id := range room.ConnectionIDs(exclude) {
		s.connRepo.Write(id, payload)
	}
}

func (s *signalingUsecase) broadcastParticipants(room *models.Room) {
	s.broadcast(room, "", events.ParticipantsUpdated, events.ParticipantListEvent{
		RoomID:       room.ID,
		Participants: room.Participants(),
		Host:         room.Host,
	})
}

// participant находит комнату отправителя и его запись в ней.
// Пустой roomID означает текущую комнату соединения.
func (s *signalingUsecase) participant(connID, roomID string) (*models.Room, *models.Participant, bool) {
	current, ok := s.connRepo.RoomOf(connID)
	if !ok || (roomID != "" && roomID != current) {
		slog.Debug(
			"event for a room the connection is not in",
			slog.String(constant.ConnectionID, connID),
			slog.String(constant.RoomID, roomID),
		)
		return nil, nil, false
	}

	room, ok := s.roomRepo.Get(current)
	if !ok {
		return nil, nil, false
	}

	p, ok := room.Participant(connID)
	if !ok {
		return nil, nil, false
	}

	return room, p, true
}

// identity подменяет заявленный клиентом user_id на subject из токена
func (s *signalingUsecase) identity(connID string, claimed models.Identity) models.Identity {
	if conn, ok := s.connRepo.Get(connID); ok && conn.UserID != "" {
		claimed.UserID = conn.UserID
	}

	return claimed
}

func (s *signalingUsecase) systemMessage(room *models.Room, userID, text string) {
	msg := models.NewSystemMessage(room.ID, userID, text, s.now())
	s.broadcast(room, "", events.ChatMessage, msg)
}

func dropped(reason, connID, roomID string) {
	slog.Debug(reason, slog.String(constant.ConnectionID, connID), slog.String(constant.RoomID, roomID))
}
