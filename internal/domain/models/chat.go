package models

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// SystemUserName - имя отправителя служебных сообщений
const SystemUserName = "System"

type ChatMessage struct {
	ID        string    `json:"id" db:"id"`
	RoomID    string    `json:"room_id" db:"room_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	UserName  string    `json:"user_name" db:"user_name"`
	Message   string    `json:"message" db:"message"`
	System    bool      `json:"system,omitempty" db:"-"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}

func NewChatMessage(roomID, userID, userName, text string, now time.Time) *ChatMessage {
	return &ChatMessage{
		ID:        ulid.Make().String(),
		RoomID:    roomID,
		UserID:    userID,
		UserName:  userName,
		Message:   text,
		CreatedAt: now,
	}
}

func NewSystemMessage(roomID, userID, text string, now time.Time) *ChatMessage {
	msg := NewChatMessage(roomID, userID, SystemUserName, text, now)
	msg.System = true

	return msg
}
