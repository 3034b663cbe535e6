package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRoomParticipantsKeepJoinOrder(t *testing.T) {
	r := NewRoom("r1", t0)

	require.True(t, r.AddParticipant(NewParticipant("c1", Identity{UserID: "u1", Name: "Ann"}, t0)))
	require.True(t, r.AddParticipant(NewParticipant("c2", Identity{UserID: "u2", Name: "Bob"}, t0)))
	require.True(t, r.AddParticipant(NewParticipant("c3", Identity{UserID: "u3", Name: "Cid"}, t0)))

	// повторный вход не дублирует участника и не меняет порядок
	require.False(t, r.AddParticipant(NewParticipant("c1", Identity{UserID: "u1", Name: "Ann2"}, t0)))

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"c1", "c2", "c3"}, r.ConnectionIDs(""))
	assert.Equal(t, "Ann2", r.Participants()[0].Name)

	_, ok := r.RemoveParticipant("c1")
	require.True(t, ok)

	first, ok := r.FirstParticipant()
	require.True(t, ok)
	assert.Equal(t, "c2", first.ConnectionID)
	assert.Equal(t, []string{"c3"}, r.ConnectionIDs("c2"))

	_, ok = r.RemoveParticipant("missing")
	assert.False(t, ok)
}

func TestRoomParticipantsReturnsCopies(t *testing.T) {
	r := NewRoom("r1", t0)
	p := NewParticipant("c1", Identity{UserID: "u1", Name: "Ann"}, t0)
	p.SetMedia("audio", true)
	r.AddParticipant(p)

	list := r.Participants()
	list[0].Media["audio"] = false
	list[0].Name = "changed"

	stored, _ := r.Participant("c1")
	assert.True(t, stored.Media["audio"])
	assert.Equal(t, "Ann", stored.Name)
}

func TestRoomPendingIsIdempotent(t *testing.T) {
	r := NewRoom("r1", t0)

	assert.True(t, r.AddPending(&PendingRequest{ConnectionID: "c2", Name: "Bob"}))
	assert.False(t, r.AddPending(&PendingRequest{ConnectionID: "c2", Name: "Bobby"}))
	assert.True(t, r.AddPending(&PendingRequest{ConnectionID: "c3", Name: "Cid"}))

	require.Equal(t, 2, r.PendingLen())
	assert.Equal(t, "Bobby", r.PendingRequests()[0].Name)

	cleared := r.ClearPending()
	assert.Len(t, cleared, 2)
	assert.Zero(t, r.PendingLen())
}

func TestRoomOwners(t *testing.T) {
	r := NewRoom("r1", t0)

	assert.Nil(t, r.Owner(CapabilityScreenShare))
	assert.Nil(t, r.Owner(CapabilityWatchParty))
	assert.False(t, r.SetOwner(CapabilityWatchParty, ControlOwner{ConnectionID: "c1"}))

	require.True(t, r.SetOwner(CapabilityScreenShare, ControlOwner{ConnectionID: "c1", Name: "Ann"}))
	assert.Equal(t, "c1", r.Owner(CapabilityScreenShare).ConnectionID)

	r.WatchParty = NewWatchParty("https://v", ControlOwner{ConnectionID: "c1"}, t0)
	require.True(t, r.SetOwner(CapabilityWatchParty, ControlOwner{ConnectionID: "c2", Name: "Bob"}))
	assert.Equal(t, "c2", r.Owner(CapabilityWatchParty).ConnectionID)
	assert.Nil(t, r.Owner(Capability("laser")))
}

func TestParticipantSetMediaIgnoresUnknownKinds(t *testing.T) {
	p := NewParticipant("c1", Identity{Name: "Ann"}, t0)

	p.SetMedia(MediaVideo, true)
	p.SetMedia("x-custom", true)

	assert.Equal(t, map[string]bool{MediaVideo: true}, p.Media)
}
