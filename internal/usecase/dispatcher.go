package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/application/metric"
	"github.com/qrave1/RoomSync/internal/domain/events"
)

type handlerFunc func(ctx context.Context, connID string, msg *events.Message) error

// Dispatcher разбирает входящие кадры и выполняет обработчики в EventLoop
type Dispatcher struct {
	loop      *EventLoop
	signaling SignalingUsecase

	handlers map[string]handlerFunc
}

func NewDispatcher(loop *EventLoop, signaling SignalingUsecase) *Dispatcher {
	d := &Dispatcher{
		loop:      loop,
		signaling: signaling,
	}

	uc := signaling

	d.handlers = map[string]handlerFunc{
		events.Join:              decoded(uc.HandleJoin),
		events.JoinRequest:       decoded(uc.HandleJoinRequest),
		events.AcceptRequest:     decoded(uc.HandleAcceptRequest),
		events.RejectRequest:     decoded(uc.HandleRejectRequest),
		events.RemoveParticipant: decoded(uc.HandleRemoveParticipant),
		events.Leave:             decoded(uc.HandleLeave),

		events.ToggleMedia:      decoded(uc.HandleToggleMedia),
		events.ScreenShareStart: decoded(uc.HandleScreenShareStart),
		events.ScreenShareStop:  decoded(uc.HandleScreenShareStop),
		events.RequestControl:   decoded(uc.HandleRequestControl),
		events.GrantControl:     decoded(uc.HandleGrantControl),
		events.DenyControl:      decoded(uc.HandleDenyControl),

		events.WatchSetURL:      decoded(uc.HandleWatchSetURL),
		events.WatchPlay:        decoded(uc.HandleWatchPlay),
		events.WatchPause:       decoded(uc.HandleWatchPause),
		events.WatchSeek:        decoded(uc.HandleWatchSeek),
		events.WatchTimeUpdate:  decoded(uc.HandleWatchTimeUpdate),
		events.WatchRequestSync: decoded(uc.HandleWatchRequestSync),
		events.WatchStop:        decoded(uc.HandleWatchStop),

		events.ChatMessage: decoded(uc.HandleChatMessage),

		events.Ping: func(ctx context.Context, connID string, _ *events.Message) error {
			uc.HandlePing(ctx, connID)
			return nil
		},
	}

	for kind := range events.SignalKinds {
		d.handlers[kind] = func(ctx context.Context, connID string, msg *events.Message) error {
			var e events.SignalEvent
			if err := msg.Decode(&e); err != nil {
				return err
			}

			return uc.HandleSignal(ctx, connID, msg.Type, e)
		}
	}

	return d
}

// Connect регистрирует новое соединение в цикле и отправляет ему приветствие
func (d *Dispatcher) Connect(ctx context.Context, connID string) error {
	return d.loop.Submit(ctx, func(ctx context.Context) {
		d.signaling.HandleConnect(ctx, connID)
	})
}

// Disconnect не зависит от отмены ctx: разрыв должен быть обработан всегда
func (d *Dispatcher) Disconnect(ctx context.Context, connID string) error {
	return d.loop.Submit(context.WithoutCancel(ctx), func(ctx context.Context) {
		d.signaling.HandleDisconnect(ctx, connID)
	})
}

// Dispatch разбирает конверт в горутине соединения, а обработку отдаёт циклу
func (d *Dispatcher) Dispatch(ctx context.Context, connID string, raw []byte) error {
	msg := new(events.Message)

	if err := json.Unmarshal(raw, msg); err != nil {
		return d.loop.Submit(ctx, func(context.Context) {
			d.signaling.SendError(connID, fmt.Errorf("malformed message: %w", err))
		})
	}

	return d.loop.Submit(ctx, func(ctx context.Context) {
		d.handle(ctx, connID, msg)
	})
}

func (d *Dispatcher) handle(ctx context.Context, connID string, msg *events.Message) {
	handler, ok := d.handlers[msg.Type]
	if !ok {
		slog.Debug("unknown message type", slog.String(constant.ConnectionID, connID), slog.String(constant.EventType, msg.Type))
		d.signaling.SendError(connID, fmt.Errorf("%w: %q", ErrUnknownEventType, msg.Type))
		return
	}

	metric.RecordEvent(msg.Type)

	if err := handler(ctx, connID, msg); err != nil {
		slog.Warn(
			"handle message",
			slog.String(constant.ConnectionID, connID),
			slog.String(constant.EventType, msg.Type),
			slog.Any(constant.Error, err),
		)

		d.signaling.SendError(connID, err)
	}
}

func decoded[T any](fn func(context.Context, string, T) error) handlerFunc {
	return func(ctx context.Context, connID string, msg *events.Message) error {
		var e T
		if err := msg.Decode(&e); err != nil {
			return err
		}

		return fn(ctx, connID, e)
	}
}
