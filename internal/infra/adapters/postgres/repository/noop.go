package repository

import (
	"context"

	"github.com/qrave1/RoomSync/internal/domain/models"
)

// Noop хранилище для STORE_DRIVER=none
type Noop struct{}

func (Noop) UpsertParticipant(context.Context, string, *models.Participant) error { return nil }

func (Noop) RemoveParticipant(context.Context, string, string) error { return nil }

func (Noop) AppendMessage(context.Context, *models.ChatMessage) error { return nil }
