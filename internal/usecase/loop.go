package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/qrave1/RoomSync/internal/application/constant"
)

var ErrLoopStopped = errors.New("event loop stopped")

// EventLoop - единственная горутина, через которую проходят все изменения состояния комнат.
// Обработчики выполняются строго по одному, поэтому комнатам не нужны блокировки.
type EventLoop struct {
	events chan func(context.Context)
	done   chan struct{}
}

func NewEventLoop(buffer int) *EventLoop {
	return &EventLoop{
		events: make(chan func(context.Context), buffer),
		done:   make(chan struct{}),
	}
}

// Run обрабатывает события до отмены ctx
func (l *EventLoop) Run(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.events:
			l.exec(ctx, fn)
		}
	}
}

// Submit ставит событие в очередь. Блокируется, если очередь заполнена.
func (l *EventLoop) Submit(ctx context.Context, fn func(context.Context)) error {
	select {
	case l.events <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done закрывается после остановки Run
func (l *EventLoop) Done() <-chan struct{} {
	return l.done
}

func (l *EventLoop) exec(ctx context.Context, fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error(
				"event handler panic",
				slog.Any(constant.Error, fmt.Errorf("%v", r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn(ctx)
}
