package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/qrave1/RoomSync/internal/domain/events"
	"github.com/qrave1/RoomSync/internal/domain/models"
)

func (s *signalingUsecase) HandleChatMessage(_ context.Context, connID string, e events.ChatEvent) error {
	text := strings.TrimSpace(e.Text)
	if text == "" {
		return nil
	}

	if s.chatMaxLength > 0 && utf8.RuneCountInString(text) > s.chatMaxLength {
		return fmt.Errorf("%w: max %d characters", ErrChatTooLong, s.chatMaxLength)
	}

	room, p, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	msg := models.NewChatMessage(room.ID, p.UserID, p.Name, text, s.now())

	s.broadcast(room, "", events.ChatMessage, msg)

	s.persister.Go("append_chat_message", room.ID, func(ctx context.Context) error {
		if err := s.chatRepo.AppendMessage(ctx, msg); err != nil {
			return fmt.Errorf("append chat message: %w", err)
		}

		return nil
	})

	return nil
}
