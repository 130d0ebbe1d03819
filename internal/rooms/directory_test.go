package rooms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrivateRoomIDSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"b", "a"},
		{"conn-1", "conn-2"},
		{"zzz", "aaa"},
		{"550e8400-e29b-41d4-a716-446655440000", "06b2f812-4a7c-4d38-9c1a-2f9a4f9f0b11"},
	}

	for _, p := range pairs {
		require.Equal(t, PrivateRoomID(p[0], p[1]), PrivateRoomID(p[1], p[0]))
	}
}

func TestPrivateRoomIDNeverCollidesWithPublic(t *testing.T) {
	d := NewDirectory([]string{"general", "random", "tech", "gaming"})

	id := PrivateRoomID("alice-conn", "bob-conn")
	require.False(t, d.IsPublic(id))
	require.True(t, IsPrivate(id))
}

func TestNewDirectoryFiltersInvalidNames(t *testing.T) {
	d := NewDirectory([]string{"general", "", "  ", "private-sneaky", "general", "tech"})

	require.Equal(t, []string{"general", "tech"}, d.Public())
	require.False(t, d.IsPublic("private-sneaky"))
}

func TestAllowedJoinTarget(t *testing.T) {
	d := NewDirectory([]string{"general", "tech"})

	tests := []struct {
		name      string
		room      string
		requester string
		want      bool
	}{
		{"public room", "general", "conn-1", true},
		{"unknown room", "lounge", "conn-1", false},
		{"own private room", PrivateRoomID("conn-1", "conn-2"), "conn-1", true},
		{"own private room other side", PrivateRoomID("conn-1", "conn-2"), "conn-2", true},
		{"foreign private room", PrivateRoomID("conn-2", "conn-3"), "conn-1", false},
		{"empty requester", PrivateRoomID("conn-1", "conn-2"), "", false},
		{"bare prefix", "private-", "conn-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, d.AllowedJoinTarget(tt.room, tt.requester))
		})
	}
}
