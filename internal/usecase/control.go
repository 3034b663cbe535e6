package usecase

import (
	"context"

	"github.com/qrave1/RoomSync/internal/domain/events"
	"github.com/qrave1/RoomSync/internal/domain/models"
)

func (s *signalingUsecase) HandleScreenShareStart(_ context.Context, connID string, e events.RoomEvent) error {
	room, p, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	room.SetOwner(models.CapabilityScreenShare, models.ControlOwner{ConnectionID: connID, Name: p.Name})

	s.broadcast(room, connID, events.ScreenShareStarted, events.OwnerEvent{ConnectionID: connID, Name: p.Name})

	return nil
}

// HandleScreenShareStop: остановка всегда рассылается, но запись о владельце
// снимается только если остановил сам владелец
func (s *signalingUsecase) HandleScreenShareStop(_ context.Context, connID string, e events.RoomEvent) error {
	room, p, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	if room.ScreenShare != nil && room.ScreenShare.ConnectionID == connID {
		room.ScreenShare = nil
	}

	s.broadcast(room, connID, events.ScreenShareStopped, events.OwnerEvent{ConnectionID: connID, Name: p.Name})

	return nil
}

func (s *signalingUsecase) HandleRequestControl(_ context.Context, connID string, e events.ControlEvent) error {
	if !e.Capability.Valid() {
		return ErrUnknownCapability
	}

	room, p, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	owner := room.Owner(e.Capability)
	if owner == nil || owner.ConnectionID == connID {
		return nil
	}

	s.send(owner.ConnectionID, events.ControlRequested, events.ControlNoticeEvent{
		Capability:   e.Capability,
		ConnectionID: connID,
		Name:         p.Name,
	})

	return nil
}

func (s *signalingUsecase) HandleGrantControl(_ context.Context, connID string, e events.ControlEvent) error {
	if !e.Capability.Valid() {
		return ErrUnknownCapability
	}

	if e.To == "" {
		return ErrTargetRequired
	}

	room, _, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	if !s.canControl(room, e.Capability, connID) {
		dropped("grant from non-owner", connID, room.ID)
		return nil
	}

	target, ok := room.Participant(e.To)
	if !ok {
		dropped("grant to unknown participant", e.To, room.ID)
		return nil
	}

	owner := models.ControlOwner{ConnectionID: target.ConnectionID, Name: target.Name}
	if !room.SetOwner(e.Capability, owner) {
		dropped("grant of inactive capability", connID, room.ID)
		return nil
	}

	s.broadcast(room, "", events.ControlGranted, events.ControlNoticeEvent{
		Capability:   e.Capability,
		ConnectionID: owner.ConnectionID,
		Name:         owner.Name,
	})

	return nil
}

func (s *signalingUsecase) HandleDenyControl(_ context.Context, connID string, e events.ControlEvent) error {
	if !e.Capability.Valid() {
		return ErrUnknownCapability
	}

	if e.To == "" {
		return ErrTargetRequired
	}

	room, p, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	if !s.canControl(room, e.Capability, connID) {
		dropped("deny from non-owner", connID, room.ID)
		return nil
	}

	if _, ok := room.Participant(e.To); !ok {
		dropped("deny to unknown participant", e.To, room.ID)
		return nil
	}

	s.send(e.To, events.ControlDenied, events.ControlNoticeEvent{
		Capability:   e.Capability,
		ConnectionID: connID,
		Name:         p.Name,
	})

	return nil
}

// canControl сверяет отправителя с текущим владельцем возможности.
// В permissive режиме проверки нет. Без владельца распоряжаться может любой участник.
func (s *signalingUsecase) canControl(room *models.Room, c models.Capability, connID string) bool {
	if !s.strictControl {
		return true
	}

	owner := room.Owner(c)
	if owner == nil {
		return true
	}

	return owner.ConnectionID == connID || room.IsHost(connID)
}
