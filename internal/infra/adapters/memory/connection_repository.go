package memory

import (
	"log/slog"
	"sync"

	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/application/metric"
)

// Connection - живое websocket соединение со своей очередью исходящих сообщений.
// Писать в очередь может только event loop, читает её write pump соединения.
type Connection struct {
	ID string
	// UserID - subject из JWT, пусто если авторизация выключена
	UserID string

	send     chan []byte
	kicked   chan struct{}
	kickOnce sync.Once

	roomID string
}

func NewConnection(id, userID string, buffer int) *Connection {
	return &Connection{
		ID:     id,
		UserID: userID,
		send:   make(chan []byte, buffer),
		kicked: make(chan struct{}),
	}
}

// Send - очередь для write pump. Закрывается при удалении соединения из реестра
func (c *Connection) Send() <-chan []byte {
	return c.send
}

// Kicked закрывается, когда соединение не успевает вычитывать очередь
func (c *Connection) Kicked() <-chan struct{} {
	return c.kicked
}

func (c *Connection) kick() {
	c.kickOnce.Do(func() { close(c.kicked) })
}

// ConnectionRepository интерфейс для работы с активными сессиями в памяти
type ConnectionRepository interface {
	Add(conn *Connection)
	Remove(connectionID string)
	Get(connectionID string) (*Connection, bool)
	Exists(connectionID string) bool

	// Write кладёт сообщение в очередь без блокировки. Переполненная очередь
	// приводит к разрыву соединения, сообщение теряется.
	Write(connectionID string, payload []byte) bool

	SetRoom(connectionID, roomID string)
	RoomOf(connectionID string) (string, bool)
	ClearRoom(connectionID string)

	Len() int
}

type connectionRepository struct {
	conns map[string]*Connection

	mu sync.RWMutex
}

func NewConnectionRepository() ConnectionRepository {
	return &connectionRepository{
		conns: make(map[string]*Connection, 10),
	}
}

func (r *connectionRepository) Add(conn *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn.ID]; !ok {
		metric.IncrementWSActiveConnections()
	}

	r.conns[conn.ID] = conn
}

func (r *connectionRepository) Remove(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[connectionID]
	if !ok {
		return
	}

	delete(r.conns, connectionID)
	close(conn.send)

	metric.DecrementWSActiveConnections()
}

func (r *connectionRepository) Get(connectionID string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[connectionID]
	return conn, ok
}

func (r *connectionRepository) Exists(connectionID string) bool {
	_, ok := r.Get(connectionID)
	return ok
}

func (r *connectionRepository) Write(connectionID string, payload []byte) bool {
	// RLock удерживается на время отправки, чтобы Remove не закрыл канал между проверкой и записью
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[connectionID]
	if !ok {
		return false
	}

	select {
	case conn.send <- payload:
		return true
	default:
		slog.Warn("outbound queue is full, kicking connection", slog.String(constant.ConnectionID, connectionID))

		metric.IncrementDroppedMessages()
		conn.kick()

		return false
	}
}

func (r *connectionRepository) SetRoom(connectionID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.conns[connectionID]; ok {
		conn.roomID = roomID
	}
}

func (r *connectionRepository) RoomOf(connectionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[connectionID]
	if !ok || conn.roomID == "" {
		return "", false
	}

	return conn.roomID, true
}

func (r *connectionRepository) ClearRoom(connectionID string) {
	r.SetRoom(connectionID, "")
}

func (r *connectionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}
