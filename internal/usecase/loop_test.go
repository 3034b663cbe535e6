package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLoop(t *testing.T, buffer int) (*EventLoop, context.CancelFunc) {
	t.Helper()

	loop := NewEventLoop(buffer)
	ctx, cancel := context.WithCancel(context.Background())

	go loop.Run(ctx)

	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	return loop, cancel
}

func TestEventLoopRunsEventsInOrder(t *testing.T) {
	loop, _ := runLoop(t, 16)
	ctx := context.Background()

	var (
		mu  sync.Mutex
		got []int
		wg  sync.WaitGroup
	)

	wg.Add(100)
	for i := 0; i < 100; i++ {
		require.NoError(t, loop.Submit(ctx, func(context.Context) {
			defer wg.Done()

			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	wg.Wait()

	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestEventLoopSurvivesPanic(t *testing.T) {
	loop, _ := runLoop(t, 4)
	ctx := context.Background()

	require.NoError(t, loop.Submit(ctx, func(context.Context) {
		panic("boom")
	}))

	done := make(chan struct{})
	require.NoError(t, loop.Submit(ctx, func(context.Context) {
		close(done)
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop stopped after panic")
	}
}

func TestEventLoopSubmitAfterStop(t *testing.T) {
	loop, cancel := runLoop(t, 0)

	cancel()
	<-loop.Done()

	err := loop.Submit(context.Background(), func(context.Context) {})
	require.ErrorIs(t, err, ErrLoopStopped)
}

func TestEventLoopSubmitRespectsContext(t *testing.T) {
	// цикл не запущен, очередь без буфера
	loop := NewEventLoop(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Submit(ctx, func(context.Context) {})
	require.ErrorIs(t, err, context.Canceled)
}
