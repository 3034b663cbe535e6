package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/qrave1/RoomSync/internal/domain/models"
)

// ChatRepository - история чата, только добавление
type ChatRepository interface {
	AppendMessage(ctx context.Context, msg *models.ChatMessage) error
}

type chatRepo struct {
	db *sqlx.DB
}

func NewChatRepo(db *sqlx.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) AppendMessage(ctx context.Context, msg *models.ChatMessage) error {
	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO chat_messages (id, room_id, user_id, user_name, message, created_at)
VALUES (:id, :room_id, :user_id, :user_name, :message, :created_at)`,
		msg,
	)

	return err
}
