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

func (s *signalingUsecase) HandleJoin(ctx context.Context, connID string, e events.JoinEvent) error {
	if e.RoomID == "" {
		return ErrRoomIDRequired
	}

	if !e.IsHost {
		return s.HandleJoinRequest(ctx, connID, e)
	}

	identity := s.identity(connID, e.Identity())

	room, created := s.roomRepo.GetOrCreate(e.RoomID, s.now())
	if created {
		slog.Info("room created", slog.String(constant.RoomID, room.ID))
	}

	// последний host join перезаписывает запись о хосте
	room.Host = &models.Host{
		ConnectionID: connID,
		UserID:       identity.UserID,
		Name:         identity.Name,
	}

	if _, ok := room.RemovePending(connID); ok {
		metric.AddPendingRequests(-1)
	}

	s.admit(ctx, room, connID, identity)

	if room.PendingLen() > 0 {
		s.sendPending(room)
	}

	return nil
}

func (s *signalingUsecase) HandleJoinRequest(_ context.Context, connID string, e events.JoinEvent) error {
	if e.RoomID == "" {
		return ErrRoomIDRequired
	}

	room, ok := s.roomRepo.Get(e.RoomID)
	if !ok || room.Host == nil {
		s.send(connID, events.JoinRejected, events.JoinRejectedEvent{
			RoomID: e.RoomID,
			Reason: events.ReasonHostNotPresent,
		})
		return nil
	}

	if _, ok := room.Participant(connID); ok {
		dropped("join request from an admitted participant", connID, room.ID)
		return nil
	}

	identity := s.identity(connID, e.Identity())

	req := &models.PendingRequest{
		ConnectionID: connID,
		UserID:       identity.UserID,
		Name:         identity.Name,
		Avatar:       identity.Avatar,
		RequestedAt:  s.now(),
	}

	if room.AddPending(req) {
		metric.AddPendingRequests(1)
	}

	s.send(connID, events.JoinPending, events.RoomNoticeEvent{RoomID: room.ID})
	s.send(room.Host.ConnectionID, events.JoinRequested, events.JoinRequestedEvent{RoomID: room.ID, Request: *req})
	s.sendPending(room)

	return nil
}

func (s *signalingUsecase) HandleAcceptRequest(ctx context.Context, connID string, e events.TargetEvent) error {
	room, err := s.hostRoom(connID, e)
	if err != nil || room == nil {
		return err
	}

	req, ok := room.RemovePending(e.TargetID)
	if !ok {
		dropped("accept of unknown request", e.TargetID, room.ID)
		return nil
	}

	metric.AddPendingRequests(-1)

	if s.connRepo.Exists(req.ConnectionID) {
		s.admit(ctx, room, req.ConnectionID, req.Identity())
		s.send(req.ConnectionID, events.JoinAccepted, events.RoomNoticeEvent{RoomID: room.ID})
	}

	s.sendPending(room)

	return nil
}

func (s *signalingUsecase) HandleRejectRequest(_ context.Context, connID string, e events.TargetEvent) error {
	room, err := s.hostRoom(connID, e)
	if err != nil || room == nil {
		return err
	}

	req, ok := room.RemovePending(e.TargetID)
	if !ok {
		dropped("reject of unknown request", e.TargetID, room.ID)
		return nil
	}

	metric.AddPendingRequests(-1)

	s.send(req.ConnectionID, events.JoinRejected, events.JoinRejectedEvent{
		RoomID: room.ID,
		Reason: events.ReasonRejected,
	})
	s.sendPending(room)

	return nil
}

func (s *signalingUsecase) HandleRemoveParticipant(ctx context.Context, connID string, e events.TargetEvent) error {
	room, err := s.hostRoom(connID, e)
	if err != nil || room == nil {
		return err
	}

	if e.TargetID == connID {
		dropped("host cannot remove itself", connID, room.ID)
		return nil
	}

	if _, ok := room.Participant(e.TargetID); !ok {
		dropped("remove of unknown participant", e.TargetID, room.ID)
		return nil
	}

	s.send(e.TargetID, events.Removed, events.RoomNoticeEvent{RoomID: room.ID})
	s.depart(ctx, e.TargetID, room.ID)

	return nil
}

// hostRoom проверяет, что отправитель действительно хост комнаты.
// nil без ошибки означает, что событие нужно отбросить.
func (s *signalingUsecase) hostRoom(connID string, e events.TargetEvent) (*models.Room, error) {
	if e.RoomID == "" {
		return nil, ErrRoomIDRequired
	}

	if e.TargetID == "" {
		return nil, ErrTargetRequired
	}

	room, ok := s.roomRepo.Get(e.RoomID)
	if !ok {
		dropped("host action for unknown room", connID, e.RoomID)
		return nil, nil
	}

	if !room.IsHost(connID) {
		dropped("host action from non-host", connID, e.RoomID)
		return nil, nil
	}

	return room, nil
}

// admit - общий путь допуска в комнату для хоста и принятой заявки
func (s *signalingUsecase) admit(ctx context.Context, room *models.Room, connID string, identity models.Identity) {
	if current, ok := s.connRepo.RoomOf(connID); ok && current != room.ID {
		s.depart(ctx, connID, current)
	}

	p := models.NewParticipant(connID, identity, s.now())
	if prev, ok := room.Participant(connID); ok {
		p.JoinedAt = prev.JoinedAt
		p.Media = prev.Media
	}

	isNew := room.AddParticipant(p)
	if isNew {
		metric.AddAdmittedParticipants(1)
	}

	s.connRepo.SetRoom(connID, room.ID)

	participant := *p
	s.persister.Go("upsert_participant", room.ID, func(ctx context.Context) error {
		if err := s.membershipRepo.UpsertParticipant(ctx, room.ID, &participant); err != nil {
			return fmt.Errorf("upsert participant: %w", err)
		}

		return nil
	})

	if isNew {
		s.broadcast(room, connID, events.UserJoined, p)
	}

	s.send(connID, events.AllUsers, events.AllUsersEvent{
		RoomID: room.ID,
		Users:  othersOf(room, connID),
	})

	s.broadcastParticipants(room)

	if isNew {
		s.systemMessage(room, p.UserID, fmt.Sprintf("%s joined the room", p.Name))
	}

	slog.Info(
		"participant admitted",
		slog.String(constant.RoomID, room.ID),
		slog.String(constant.ConnectionID, connID),
		slog.String(constant.UserName, p.Name),
		slog.Int("participants", room.Len()),
	)
}

func (s *signalingUsecase) sendPending(room *models.Room) {
	if room.Host == nil {
		return
	}

	s.send(room.Host.ConnectionID, events.PendingUpdated, events.PendingListEvent{
		RoomID:  room.ID,
		Pending: room.PendingRequests(),
	})
}

func othersOf(room *models.Room, connID string) []models.Participant {
	all := room.Participants()

	others := make([]models.Participant, 0, len(all))
	for _, p := range all {
		if p.ConnectionID != connID {
			others = append(others, p)
		}
	}

	return others
}
