package usecase

import (
	"context"
	"log/slog"

	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/domain/events"
	"github.com/qrave1/RoomSync/internal/domain/models"
)

func (s *signalingUsecase) HandleWatchSetURL(_ context.Context, connID string, e events.WatchURLEvent) error {
	if e.URL == "" {
		return ErrURLRequired
	}

	room, p, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	if room.WatchParty != nil && !s.canControl(room, models.CapabilityWatchParty, connID) {
		dropped("set-url from non-controller", connID, room.ID)
		return nil
	}

	controller := models.ControlOwner{ConnectionID: connID, Name: p.Name}
	room.WatchParty = models.NewWatchParty(e.URL, controller, s.now())

	s.broadcast(room, "", events.WatchURLChanged, events.WatchURLChangedEvent{
		URL:        e.URL,
		Controller: controller,
		UserName:   p.Name,
	})

	slog.Info("watch party started", slog.String(constant.RoomID, room.ID), slog.String(constant.UserName, p.Name))

	return nil
}

func (s *signalingUsecase) HandleWatchPlay(_ context.Context, connID string, e events.WatchPositionEvent) error {
	return s.updatePlayback(connID, events.WatchPlay, e, func(wp *models.WatchParty, by string) {
		wp.Update(true, e.Position, by, s.now())
	})
}

func (s *signalingUsecase) HandleWatchPause(_ context.Context, connID string, e events.WatchPositionEvent) error {
	return s.updatePlayback(connID, events.WatchPause, e, func(wp *models.WatchParty, by string) {
		wp.Update(false, e.Position, by, s.now())
	})
}

func (s *signalingUsecase) HandleWatchSeek(_ context.Context, connID string, e events.WatchPositionEvent) error {
	return s.updatePlayback(connID, events.WatchSeek, e, func(wp *models.WatchParty, by string) {
		wp.Seek(e.Position, by, s.now())
	})
}

// HandleWatchTimeUpdate - периодический heartbeat контроллера для коррекции дрейфа у остальных
func (s *signalingUsecase) HandleWatchTimeUpdate(_ context.Context, connID string, e events.WatchPositionEvent) error {
	return s.updatePlayback(connID, events.WatchTimeUpdate, e, func(wp *models.WatchParty, by string) {
		wp.Update(e.Playing, e.Position, by, s.now())
	})
}

func (s *signalingUsecase) HandleWatchRequestSync(_ context.Context, connID string, e events.RoomEvent) error {
	room, _, ok := s.participant(connID, e.RoomID)
	if !ok {
		return nil
	}

	snapshot, ok := s.SyncState(room.ID)
	if !ok {
		return nil
	}

	s.send(connID, events.WatchSync, snapshot)

	return nil
}

func (s *signalingUsecase) HandleWatchStop(_ context.Context, connID string, e events.RoomEvent) error {
	room, p, ok := s.participant(connID, e.RoomID)
	if !ok || room.WatchParty == nil {
		return nil
	}

	if !s.canControl(room, models.CapabilityWatchParty, connID) {
		dropped("stop from non-controller", connID, room.ID)
		return nil
	}

	room.WatchParty = nil

	s.broadcast(room, "", events.WatchStopped, events.WatchStoppedEvent{UserName: p.Name})

	slog.Info("watch party stopped", slog.String(constant.RoomID, room.ID), slog.String(constant.UserName, p.Name))

	return nil
}

// updatePlayback применяет изменение к активному просмотру и ретранслирует событие остальным
func (s *signalingUsecase) updatePlayback(
	connID, eventType string,
	e events.WatchPositionEvent,
	apply func(wp *models.WatchParty, by string),
) error {
	if e.Position < 0 {
		return ErrInvalidPosition
	}

	room, p, ok := s.participant(connID, e.RoomID)
	if !ok || room.WatchParty == nil {
		return nil
	}

	if !s.canControl(room, models.CapabilityWatchParty, connID) {
		dropped("playback change from non-controller", connID, room.ID)
		return nil
	}

	apply(room.WatchParty, p.Name)

	s.broadcast(room, connID, eventType, events.WatchPlaybackEvent{
		Position: room.WatchParty.Position,
		Playing:  room.WatchParty.Playing,
		UserName: p.Name,
	})

	return nil
}
