package usecase

import (
	"context"
	"fmt"

	"github.com/qrave1/RoomSync/internal/domain/events"
	"github.com/qrave1/RoomSync/internal/domain/models"
)

// HandleSignal пересылает offer/answer/candidate адресату как есть.
// Комната не проверяется, отсутствующий адресат - не ошибка.
func (s *signalingUsecase) HandleSignal(_ context.Context, connID, kind string, e events.SignalEvent) error {
	if e.To == "" {
		return ErrTargetRequired
	}

	if !s.connRepo.Exists(e.To) {
		dropped("signal to unknown connection", e.To, "")
		return nil
	}

	s.send(e.To, kind, events.RelayedSignalEvent{From: connID, Payload: e.Payload})

	return nil
}

func (s *signalingUsecase) HandleToggleMedia(_ context.Context, connID string, e events.ToggleMediaEvent) error {
	if e.Kind == "" {
		return ErrMediaKindRequired
	}

	if !models.ValidMediaKind(e.Kind) {
		return fmt.Errorf("%w: %q", ErrUnknownMediaKind, e.Kind)
	}

	room, p, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	p.SetMedia(e.Kind, e.Enabled)

	s.broadcast(room, connID, events.UserToggleMedia, events.MediaToggledEvent{
		ConnectionID: connID,
		UserID:       p.UserID,
		Kind:         e.Kind,
		Enabled:      e.Enabled,
	})

	return nil
}
