package events

import (
	"encoding/json"

	"github.com/qrave1/RoomSync/internal/domain/models"
)

// JoinEvent - вход в комнату. Для не-хоста работает как join-request
type JoinEvent struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	IsHost bool   `json:"is_host"`
}

func (e JoinEvent) Identity() models.Identity {
	return models.Identity{UserID: e.UserID, Name: e.Name, Avatar: e.Avatar}
}

// RoomEvent - события, которым нужен только id комнаты
type RoomEvent struct {
	RoomID string `json:"room_id"`
}

// TargetEvent - действия хоста над конкретным соединением
type TargetEvent struct {
	RoomID   string `json:"room_id"`
	TargetID string `json:"target_id"`
}

// SignalEvent - offer, answer, candidate. Payload не разбирается
type SignalEvent struct {
	To      string          `json:"to"`
	Payload json.RawMessage `json:"payload"`
}

type ToggleMediaEvent struct {
	RoomID  string `json:"room_id"`
	Kind    string `json:"kind"`
	Enabled bool   `json:"enabled"`
}

type ControlEvent struct {
	RoomID     string            `json:"room_id"`
	Capability models.Capability `json:"capability"`
	To         string            `json:"to,omitempty"`
}

type WatchURLEvent struct {
	RoomID string `json:"room_id"`
	URL    string `json:"url"`
}

// WatchPositionEvent - play, pause, seek и time-update
type WatchPositionEvent struct {
	RoomID   string  `json:"room_id"`
	Position float64 `json:"position"`
	Playing  bool    `json:"playing"`
}

type ChatEvent struct {
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}
