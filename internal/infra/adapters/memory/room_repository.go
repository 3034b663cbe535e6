package memory

import (
	"sync"
	"time"

	"github.com/qrave1/RoomSync/internal/application/metric"
	"github.com/qrave1/RoomSync/internal/domain/models"
)

// RoomRepository - каталог живых комнат. Сами комнаты мутирует только event loop,
// мьютекс защищает лишь map.
type RoomRepository interface {
	// GetOrCreate возвращает комнату, создавая её при первом обращении
	GetOrCreate(roomID string, now time.Time) (room *models.Room, created bool)
	Get(roomID string) (*models.Room, bool)
	Delete(roomID string)

	All() []*models.Room
	Len() int
}

type roomRepository struct {
	rooms map[string]*models.Room
	mu    sync.RWMutex
}

func NewRoomRepository() RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*models.Room),
	}
}

func (r *roomRepository) GetOrCreate(roomID string, now time.Time) (*models.Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[roomID]; ok {
		return room, false
	}

	room := models.NewRoom(roomID, now)
	r.rooms[roomID] = room

	metric.SetActiveRooms(len(r.rooms))

	return room, true
}

func (r *roomRepository) Get(roomID string) (*models.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	return room, ok
}

func (r *roomRepository) Delete(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, roomID)

	metric.SetActiveRooms(len(r.rooms))
}

func (r *roomRepository) All() []*models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}

	return rooms
}

func (r *roomRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}
