package presence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinCreatesUserInDefaultRoom(t *testing.T) {
	r := NewRegistry("general")

	u := r.Join("conn-1", "alice")

	require.Equal(t, "conn-1", u.ID)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "general", u.Room)
	require.True(t, u.Online)
	require.False(t, u.JoinedAt.IsZero())
}

func TestRejoinPreservesRoomAcrossLeave(t *testing.T) {
	r := NewRegistry("general")

	r.Join("conn-1", "alice")
	change := r.ChangeRoom("conn-1", "tech")
	require.NotNil(t, change)

	left := r.Leave("conn-1")
	require.NotNil(t, left)
	require.False(t, left.Online)

	u := r.Join("conn-1", "alice")
	require.True(t, u.Online)
	require.Equal(t, "tech", u.Room)
}

func TestRejoinUpdatesUsernameWithoutDuplicating(t *testing.T) {
	r := NewRegistry("general")

	r.Join("conn-1", "alice")
	u := r.Join("conn-1", "alicia")

	require.Equal(t, "alicia", u.Username)
	require.Len(t, r.ListOnline(""), 1)
}

func TestLeaveUnknownConnectionReturnsNil(t *testing.T) {
	r := NewRegistry("general")

	require.Nil(t, r.Leave("ghost"))
}

func TestChangeRoom(t *testing.T) {
	r := NewRegistry("general")
	r.Join("conn-1", "alice")

	t.Run("moves user and reports transition", func(t *testing.T) {
		change := r.ChangeRoom("conn-1", "tech")
		require.NotNil(t, change)
		require.Equal(t, "general", change.OldRoom)
		require.Equal(t, "tech", change.NewRoom)
		require.Equal(t, "tech", r.RoomOf("conn-1"))
	})

	t.Run("same room is a no-op", func(t *testing.T) {
		require.Nil(t, r.ChangeRoom("conn-1", "tech"))
	})

	t.Run("unknown connection is a no-op", func(t *testing.T) {
		require.Nil(t, r.ChangeRoom("ghost", "tech"))
	})
}

func TestListOnline(t *testing.T) {
	r := NewRegistry("general")
	r.Join("conn-1", "alice")
	r.Join("conn-2", "bob")
	r.Join("conn-3", "carol")
	r.ChangeRoom("conn-2", "tech")
	r.Leave("conn-3")

	all := r.ListOnline("")
	require.Len(t, all, 2)

	general := r.ListOnline("general")
	require.Len(t, general, 1)
	require.Equal(t, "alice", general[0].Username)

	tech := r.ListOnline("tech")
	require.Len(t, tech, 1)
	require.Equal(t, "bob", tech[0].Username)
}

func TestSnapshotsDoNotAliasInternalState(t *testing.T) {
	r := NewRegistry("general")
	u := r.Join("conn-1", "alice")

	u.Room = "hacked"
	require.Equal(t, "general", r.RoomOf("conn-1"))
}
