package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/qrave1/RoomSync/internal/domain/models"
)

// MembershipRepository - внешняя запись о составе комнаты. Только запись, читает её REST слой
type MembershipRepository interface {
	UpsertParticipant(ctx context.Context, roomID string, p *models.Participant) error
	RemoveParticipant(ctx context.Context, roomID, connectionID string) error
}

type membershipRepo struct {
	db *sqlx.DB
}

func NewMembershipRepo(db *sqlx.DB) MembershipRepository {
	return &membershipRepo{db: db}
}

func (r *membershipRepo) UpsertParticipant(ctx context.Context, roomID string, p *models.Participant) error {
	_, err := r.db.ExecContext(
		ctx,
		r.db.Rebind(`INSERT INTO room_participants (room_id, connection_id, user_id, name, avatar, joined_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (room_id, connection_id) DO UPDATE SET
    user_id = excluded.user_id,
    name = excluded.name,
    avatar = excluded.avatar,
    joined_at = excluded.joined_at`),
		roomID,
		p.ConnectionID,
		p.UserID,
		p.Name,
		p.Avatar,
		p.JoinedAt.UTC().Truncate(time.Microsecond),
	)

	return err
}

func (r *membershipRepo) RemoveParticipant(ctx context.Context, roomID, connectionID string) error {
	_, err := r.db.ExecContext(
		ctx,
		r.db.Rebind("DELETE FROM room_participants WHERE room_id = ? AND connection_id = ?"),
		roomID,
		connectionID,
	)

	return err
}
