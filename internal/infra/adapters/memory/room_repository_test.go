package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepositoryLifecycle(t *testing.T) {
	repo := NewRoomRepository()
	now := time.Now()

	room, created := repo.GetOrCreate("r1", now)
	require.True(t, created)
	assert.Equal(t, "r1", room.ID)

	again, created := repo.GetOrCreate("r1", now.Add(time.Second))
	assert.False(t, created)
	assert.Same(t, room, again)

	_, ok := repo.Get("r2")
	assert.False(t, ok)

	repo.GetOrCreate("r2", now)
	assert.Equal(t, 2, repo.Len())
	assert.Len(t, repo.All(), 2)

	repo.Delete("r1")
	_, ok = repo.Get("r1")
	assert.False(t, ok)
	assert.Equal(t, 1, repo.Len())
}
