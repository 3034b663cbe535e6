package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/application/metric"
	"github.com/qrave1/RoomSync/internal/domain/events"
	"github.com/qrave1/RoomSync/internal/domain/models"
)

func (s *signalingUsecase) HandleLeave(ctx context.Context, connID string, e events.RoomEvent) error {
	current, admitted := s.connRepo.RoomOf(connID)
	if admitted && (e.RoomID == "" || e.RoomID == current) {
		s.depart(ctx, connID, current)

		return nil
	}

	// leave для чужой комнаты отзывает заявку в неё, если она есть
	if e.RoomID == "" {
		return ErrRoomIDRequired
	}

	if !s.withdrawPending(connID, e.RoomID) && admitted {
		dropped("leave for a room the connection is not in", connID, e.RoomID)
	}

	return nil
}

func (s *signalingUsecase) withdrawPending(connID, roomID string) bool {
	room, ok := s.roomRepo.Get(roomID)
	if !ok {
		return false
	}

	if _, ok := room.RemovePending(connID); !ok {
		return false
	}

	metric.AddPendingRequests(-1)
	s.sendPending(room)

	return true
}

func (s *signalingUsecase) HandleDisconnect(ctx context.Context, connID string) {
	if current, ok := s.connRepo.RoomOf(connID); ok {
		s.depart(ctx, connID, current)
	}

	for _, room := range s.roomRepo.All() {
		s.withdrawPending(connID, room.ID)
	}

	s.connRepo.Remove(connID)

	slog.Info("connection closed", slog.String(constant.ConnectionID, connID))
}

// depart - общий путь выхода из комнаты для leave, remove и разрыва соединения
func (s *signalingUsecase) depart(_ context.Context, connID, roomID string) {
	s.connRepo.ClearRoom(connID)

	room, ok := s.roomRepo.Get(roomID)
	if !ok {
		return
	}

	p, ok := room.RemoveParticipant(connID)
	if !ok {
		return
	}

	metric.AddAdmittedParticipants(-1)

	if room.IsHost(connID) {
		room.Host = nil

		rejected := room.ClearPending()
		for _, req := range rejected {
			s.send(req.ConnectionID, events.JoinRejected, events.JoinRejectedEvent{
				RoomID: room.ID,
				Reason: events.ReasonHostLeft,
			})
		}

		metric.AddPendingRequests(-len(rejected))

		s.broadcast(room, "", events.HostLeft, events.HostLeftEvent{
			RoomID:       room.ID,
			ConnectionID: connID,
			Name:         p.Name,
		})
	}

	if room.ScreenShare != nil && room.ScreenShare.ConnectionID == connID {
		room.ScreenShare = nil

		s.broadcast(room, "", events.ScreenShareStopped, events.OwnerEvent{ConnectionID: connID, Name: p.Name})
	}

	if wp := room.WatchParty; wp != nil && wp.Controller.ConnectionID == connID {
		s.reassignWatchControl(room, p)
	}

	s.broadcast(room, "", events.UserLeft, events.UserLeftEvent{
		RoomID:       room.ID,
		ConnectionID: connID,
		UserID:       p.UserID,
		Name:         p.Name,
	})
	s.broadcastParticipants(room)
	s.systemMessage(room, p.UserID, fmt.Sprintf("%s left the room", p.Name))

	s.persister.Go("remove_participant", room.ID, func(ctx context.Context) error {
		if err := s.membershipRepo.RemoveParticipant(ctx, room.ID, connID); err != nil {
			return fmt.Errorf("remove participant: %w", err)
		}

		return nil
	})

	slog.Info(
		"participant left",
		slog.String(constant.RoomID, room.ID),
		slog.String(constant.ConnectionID, connID),
		slog.String(constant.UserName, p.Name),
		slog.Int("participants", room.Len()),
	)

	if room.Empty() {
		s.roomRepo.Delete(room.ID)

		slog.Info("room removed", slog.String(constant.RoomID, room.ID))
	}
}

// reassignWatchControl передаёт управление плеером самому раннему из оставшихся
// или завершает просмотр, если никого не осталось
func (s *signalingUsecase) reassignWatchControl(room *models.Room, leaver *models.Participant) {
	next, ok := room.FirstParticipant()
	if !ok {
		room.WatchParty = nil

		s.broadcast(room, "", events.WatchStopped, events.WatchStoppedEvent{UserName: leaver.Name})
		return
	}

	owner := models.ControlOwner{ConnectionID: next.ConnectionID, Name: next.Name}
	room.SetOwner(models.CapabilityWatchParty, owner)

	s.broadcast(room, "", events.ControlGranted, events.ControlNoticeEvent{
		Capability:   models.CapabilityWatchParty,
		ConnectionID: owner.ConnectionID,
		Name:         owner.Name,
	})
}
