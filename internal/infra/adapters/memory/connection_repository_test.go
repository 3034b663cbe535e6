package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRepositoryWriteKeepsOrder(t *testing.T) {
	repo := NewConnectionRepository()
	conn := NewConnection("c1", "", 4)
	repo.Add(conn)

	require.True(t, repo.Write("c1", []byte("1")))
	require.True(t, repo.Write("c1", []byte("2")))
	require.True(t, repo.Write("c1", []byte("3")))

	assert.Equal(t, "1", string(<-conn.Send()))
	assert.Equal(t, "2", string(<-conn.Send()))
	assert.Equal(t, "3", string(<-conn.Send()))
}

func TestConnectionRepositoryWriteToUnknownIsDropped(t *testing.T) {
	repo := NewConnectionRepository()

	assert.False(t, repo.Write("ghost", []byte("x")))
}

func TestConnectionRepositoryKicksSlowConsumer(t *testing.T) {
	repo := NewConnectionRepository()
	conn := NewConnection("c1", "", 1)
	repo.Add(conn)

	require.True(t, repo.Write("c1", []byte("1")))
	assert.False(t, repo.Write("c1", []byte("2")))

	select {
	case <-conn.Kicked():
	default:
		t.Fatal("connection was not kicked")
	}

	// повторное переполнение не паникует на закрытом kicked
	assert.False(t, repo.Write("c1", []byte("3")))
}

func TestConnectionRepositoryRemoveClosesQueue(t *testing.T) {
	repo := NewConnectionRepository()
	conn := NewConnection("c1", "u1", 1)
	repo.Add(conn)

	repo.Remove("c1")
	repo.Remove("c1")

	_, open := <-conn.Send()
	assert.False(t, open)
	assert.False(t, repo.Exists("c1"))
	assert.Zero(t, repo.Len())
}

func TestConnectionRepositoryRooms(t *testing.T) {
	repo := NewConnectionRepository()
	repo.Add(NewConnection("c1", "", 1))

	_, ok := repo.RoomOf("c1")
	assert.False(t, ok)

	repo.SetRoom("c1", "r1")
	room, ok := repo.RoomOf("c1")
	require.True(t, ok)
	assert.Equal(t, "r1", room)

	repo.ClearRoom("c1")
	_, ok = repo.RoomOf("c1")
	assert.False(t, ok)

	repo.SetRoom("ghost", "r1")
	_, ok = repo.RoomOf("ghost")
	assert.False(t, ok)
}
