package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/application/metric"
)

type persistJob struct {
	op string
	fn func(ctx context.Context) error
}

// Persister выполняет запись во внешнее хранилище в фоне.
// Вызывающий никогда не ждёт результата, ошибки только логируются.
// Записи одной комнаты применяются строго в порядке постановки, разные комнаты пишутся параллельно.
type Persister struct {
	timeout time.Duration
	wg      sync.WaitGroup

	mu sync.Mutex
	// ключ есть, пока для комнаты работает воркер
	queues map[string][]persistJob
}

func NewPersister(timeout time.Duration) *Persister {
	return &Persister{
		timeout: timeout,
		queues:  make(map[string][]persistJob),
	}
}

func (p *Persister) Go(op, roomID string, fn func(ctx context.Context) error) {
	p.wg.Add(1)

	p.mu.Lock()
	defer p.mu.Unlock()

	queue, running := p.queues[roomID]
	p.queues[roomID] = append(queue, persistJob{op: op, fn: fn})

	if !running {
		go p.drain(roomID)
	}
}

// drain - FIFO воркер комнаты, завершается когда очередь опустела
func (p *Persister) drain(roomID string) {
	for {
		p.mu.Lock()
		queue := p.queues[roomID]
		if len(queue) == 0 {
			delete(p.queues, roomID)
			p.mu.Unlock()
			return
		}

		job := queue[0]
		p.queues[roomID] = queue[1:]
		p.mu.Unlock()

		p.run(roomID, job)
		p.wg.Done()
	}
}

func (p *Persister) run(roomID string, job persistJob) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := job.fn(ctx); err != nil {
		slog.Error(
			"persist",
			slog.String(constant.Op, job.op),
			slog.String(constant.RoomID, roomID),
			slog.Any(constant.Error, err),
		)

		metric.IncrementPersistenceFailures(job.op)
	}
}

// Wait ждёт незавершённые записи, но не дольше ctx
func (p *Persister) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
