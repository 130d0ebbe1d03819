package typing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type staticResolver map[string]string

func (r staticResolver) RoomOf(connID string) string { return r[connID] }

func TestStartStop(t *testing.T) {
	rooms := staticResolver{"conn-1": "general"}
	tr := NewTracker(rooms)

	tr.Start("conn-1", "alice")
	tr.Start("conn-1", "alice") // idempotent
	require.Equal(t, []string{"alice"}, tr.ActiveInRoom("general", ""))

	tr.Stop("conn-1")
	tr.Stop("conn-1") // no-op when absent
	require.Empty(t, tr.ActiveInRoom("general", ""))
}

func TestActiveInRoomExcludesQueryingConnection(t *testing.T) {
	rooms := staticResolver{"conn-1": "general", "conn-2": "general"}
	tr := NewTracker(rooms)

	tr.Start("conn-1", "alice")
	tr.Start("conn-2", "bob")

	require.ElementsMatch(t, []string{"bob"}, tr.ActiveInRoom("general", "conn-1"))
	require.ElementsMatch(t, []string{"alice"}, tr.ActiveInRoom("general", "conn-2"))
}

func TestActiveInRoomResolvesRoomAtQueryTime(t *testing.T) {
	rooms := staticResolver{"conn-1": "general"}
	tr := NewTracker(rooms)

	tr.Start("conn-1", "alice")
	require.Equal(t, []string{"alice"}, tr.ActiveInRoom("general", ""))

	// The user moves rooms; the entry follows without re-insertion.
	rooms["conn-1"] = "tech"
	require.Empty(t, tr.ActiveInRoom("general", ""))
	require.Equal(t, []string{"alice"}, tr.ActiveInRoom("tech", ""))
}

func TestActiveInRoomIgnoresUnknownConnections(t *testing.T) {
	tr := NewTracker(staticResolver{})

	tr.Start("ghost", "casper")
	require.Empty(t, tr.ActiveInRoom("general", ""))
}
