package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersisterRunsInBackground(t *testing.T) {
	p := NewPersister(time.Second)

	release := make(chan struct{})
	var calls atomic.Int32

	p.Go("op", "r1", func(ctx context.Context) error {
		<-release
		calls.Add(1)
		return nil
	})
	p.Go("op", "r1", func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("store is down")
	})

	// Go не ждёт завершения записи
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, p.Wait(ctx), context.DeadlineExceeded)

	close(release)

	require.NoError(t, p.Wait(context.Background()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestPersisterAppliesTimeout(t *testing.T) {
	p := NewPersister(10 * time.Millisecond)

	errCh := make(chan error, 1)
	p.Go("slow", "r1", func(ctx context.Context) error {
		<-ctx.Done()
		errCh <- ctx.Err()
		return ctx.Err()
	})

	require.NoError(t, p.Wait(context.Background()))
	assert.ErrorIs(t, <-errCh, context.DeadlineExceeded)
}

func TestPersisterKeepsRoomOrder(t *testing.T) {
	p := NewPersister(time.Second)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(op string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, op)
	}

	p.Go("upsert", "r1", func(ctx context.Context) error {
		time.Sleep(30 * time.Millisecond)
		record("upsert")
		return nil
	})
	p.Go("remove", "r1", func(ctx context.Context) error {
		record("remove")
		return nil
	})

	require.NoError(t, p.Wait(context.Background()))
	assert.Equal(t, []string{"upsert", "remove"}, order)
}

func TestPersisterRoomsDoNotBlockEachOther(t *testing.T) {
	p := NewPersister(time.Second)

	release := make(chan struct{})
	p.Go("slow", "r1", func(ctx context.Context) error {
		<-release
		return nil
	})

	written := make(chan struct{})
	p.Go("fast", "r2", func(ctx context.Context) error {
		close(written)
		return nil
	})

	select {
	case <-written:
	case <-time.After(time.Second):
		t.Fatal("write to r2 waited for r1")
	}

	close(release)
	require.NoError(t, p.Wait(context.Background()))
}
