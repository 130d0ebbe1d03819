package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kim254ke/Chat-App-Server/internal/domain"
)

func msg(id, room string) *domain.Message {
	return &domain.Message{
		ID:        id,
		Sender:    "alice",
		SenderID:  "conn-1",
		Body:      "hello",
		Room:      room,
		Timestamp: time.Now().UTC(),
		Delivered: true,
		Reactions: []domain.Reaction{},
	}
}

func TestAppendEvictsOldestBeyondLimit(t *testing.T) {
	l := NewLog(500)

	for i := 1; i <= 501; i++ {
		l.Append(msg(fmt.Sprintf("m%d", i), "general"))
	}

	require.Equal(t, 500, l.Len())
	require.Nil(t, l.FindByID("m1"))

	all := l.QueryAll()
	require.Equal(t, "m2", all[0].ID)
	require.Equal(t, "m501", all[len(all)-1].ID)
	for i, m := range all {
		require.Equal(t, fmt.Sprintf("m%d", i+2), m.ID)
	}
}

func TestQueryByRoomKeepsCreationOrder(t *testing.T) {
	l := NewLog(500)
	l.Append(msg("m1", "general"))
	l.Append(msg("m2", "tech"))
	l.Append(msg("m3", "general"))

	general := l.QueryByRoom("general")
	require.Len(t, general, 2)
	require.Equal(t, "m1", general[0].ID)
	require.Equal(t, "m3", general[1].ID)
}

func TestQueryByRoomMatchesDerivedPrivateRooms(t *testing.T) {
	l := NewLog(500)
	private := msg("m1", "private-conn-1-conn-2")
	private.IsPrivate = true
	private.RecipientID = "conn-2"
	l.Append(private)
	l.Append(msg("m2", "general"))

	got := l.QueryByRoom("private-conn-1-conn-2")
	require.Len(t, got, 1)
	require.Equal(t, "m1", got[0].ID)
	require.True(t, got[0].IsPrivate)
}

func TestRemove(t *testing.T) {
	l := NewLog(500)
	l.Append(msg("m1", "general"))

	require.True(t, l.Remove("m1"))
	require.False(t, l.Remove("m1"))
	require.Nil(t, l.FindByID("m1"))
}

func TestUpdate(t *testing.T) {
	l := NewLog(500)
	l.Append(msg("m1", "general"))

	updated := l.Update("m1", func(m *domain.Message) {
		m.Body = "edited"
		m.Edited = true
	})
	require.NotNil(t, updated)
	require.Equal(t, "edited", updated.Body)
	require.True(t, updated.Edited)

	require.Nil(t, l.Update("ghost", func(m *domain.Message) { m.Read = true }))
}

func TestAccessorsReturnClones(t *testing.T) {
	l := NewLog(500)
	l.Append(msg("m1", "general"))

	got := l.FindByID("m1")
	got.Body = "tampered"
	got.Reactions = append(got.Reactions, domain.Reaction{UserID: "x", Emoji: "x"})

	fresh := l.FindByID("m1")
	require.Equal(t, "hello", fresh.Body)
	require.Empty(t, fresh.Reactions)
}
