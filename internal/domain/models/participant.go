package models

import "time"

// Identity - то, как клиент представился при входе в комнату
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Participant - соединение, допущенное в комнату
type Participant struct {
	ConnectionID string          `json:"connection_id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Avatar       string          `json:"avatar,omitempty"`
	JoinedAt     time.Time       `json:"joined_at"`
	Media        map[string]bool `json:"media,omitempty"`
}

func NewParticipant(connectionID string, identity Identity, joinedAt time.Time) *Participant {
	return &Participant{
		ConnectionID: connectionID,
		UserID:       identity.UserID,
		Name:         identity.Name,
		Avatar:       identity.Avatar,
		JoinedAt:     joinedAt,
	}
}

const (
	MediaAudio  = "audio"
	MediaVideo  = "video"
	MediaScreen = "screen"
)

func ValidMediaKind(kind string) bool {
	switch kind {
	case MediaAudio, MediaVideo, MediaScreen:
		return true
	default:
		return false
	}
}

// SetMedia запоминает состояние трека. Неизвестные виды игнорируются.
func (p *Participant) SetMedia(kind string, enabled bool) {
	if !ValidMediaKind(kind) {
		return
	}

	if p.Media == nil {
		p.Media = make(map[string]bool, 2)
	}

	p.Media[kind] = enabled
}

func (p *Participant) clone() Participant {
	c := *p
	if p.Media != nil {
		c.Media = make(map[string]bool, len(p.Media))
		for k, v := range p.Media {
			c.Media[k] = v
		}
	}

	return c
}

// PendingRequest - заявка на вход, видна только хосту
type PendingRequest struct {
	ConnectionID string    `json:"connection_id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar,omitempty"`
	RequestedAt  time.Time `json:"requested_at"`
}

func (r *PendingRequest) Identity() Identity {
	return Identity{UserID: r.UserID, Name: r.Name, Avatar: r.Avatar}
}

// Host - запись о хосте комнаты
type Host struct {
	ConnectionID string `json:"connection_id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
}

// ControlOwner - владелец взаимоисключающей возможности (демонстрация экрана, управление плеером)
type ControlOwner struct {
	ConnectionID string `json:"connection_id"`
	Name         string `json:"name"`
}
