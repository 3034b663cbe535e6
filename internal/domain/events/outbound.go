package events

import (
	"encoding/json"

	"github.com/qrave1/RoomSync/internal/domain/models"
)

type ConnectedEvent struct {
	ConnectionID string `json:"connection_id"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

type AllUsersEvent struct {
	RoomID string               `json:"room_id"`
	Users  []models.Participant `json:"users"`
}

// ParticipantListEvent - событие со списком активных участников комнаты
type ParticipantListEvent struct {
	RoomID       string               `json:"room_id"`
	Participants []models.Participant `json:"participants"`
	Host         *models.Host         `json:"host,omitempty"`
}

type UserLeftEvent struct {
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
}

// RoomNoticeEvent - join-pending, join-accepted, removed
type RoomNoticeEvent struct {
	RoomID string `json:"room_id"`
}

type JoinRequestedEvent struct {
	RoomID  string                `json:"room_id"`
	Request models.PendingRequest `json:"request"`
}

type PendingListEvent struct {
	RoomID  string                  `json:"room_id"`
	Pending []models.PendingRequest `json:"pending"`
}

type JoinRejectedEvent struct {
	RoomID string `json:"room_id"`
	Reason string `json:"reason"`
}

type HostLeftEvent struct {
	RoomID       string `json:"room_id"`
	ConnectionID string `json:"connection_id"`
	Name         string `json:"name"`
}

// RelayedSignalEvent - то, что получает адресат offer/answer/candidate
type RelayedSignalEvent struct {
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type MediaToggledEvent struct {
	ConnectionID string `json:"connection_id"`
	UserID       string `json:"user_id"`
	Kind         string `json:"kind"`
	Enabled      bool   `json:"enabled"`
}

// OwnerEvent - screen-share-started/stopped
type OwnerEvent struct {
	ConnectionID string `json:"connection_id"`
	Name         string `json:"name"`
}

// ControlNoticeEvent - control-requested/granted/denied.
// ConnectionID и Name указывают на того, о ком уведомление: просящего, нового владельца или отказавшего.
type ControlNoticeEvent struct {
	Capability   models.Capability `json:"capability"`
	ConnectionID string            `json:"connection_id"`
	Name         string            `json:"name"`
}

type WatchURLChangedEvent struct {
	URL        string              `json:"url"`
	Controller models.ControlOwner `json:"controller"`
	UserName   string              `json:"user_name"`
}

// WatchPlaybackEvent - ретрансляция play/pause/seek/time-update остальным
type WatchPlaybackEvent struct {
	Position float64 `json:"position"`
	Playing  bool    `json:"playing"`
	UserName string  `json:"user_name"`
}

type WatchStoppedEvent struct {
	UserName string `json:"user_name"`
}
