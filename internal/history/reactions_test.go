package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kim254ke/Chat-App-Server/internal/domain"
)

func TestAddOrReplaceReactionIsIdempotentPerUser(t *testing.T) {
	l := NewLog(500)
	l.Append(msg("m1", "general"))

	first := l.AddOrReplaceReaction("m1", "conn-2", "👍")
	require.NotNil(t, first)
	require.Equal(t, []domain.Reaction{{UserID: "conn-2", Emoji: "👍"}}, first.Reactions)

	// Same user reacting again replaces the emoji, no second entry.
	second := l.AddOrReplaceReaction("m1", "conn-2", "🔥")
	require.Equal(t, []domain.Reaction{{UserID: "conn-2", Emoji: "🔥"}}, second.Reactions)
}

func TestAddOrReplaceReactionAccumulatesAcrossUsers(t *testing.T) {
	l := NewLog(500)
	l.Append(msg("m1", "general"))

	l.AddOrReplaceReaction("m1", "conn-2", "👍")
	updated := l.AddOrReplaceReaction("m1", "conn-3", "🎉")

	require.Len(t, updated.Reactions, 2)
}

func TestAddOrReplaceReactionUnknownMessage(t *testing.T) {
	l := NewLog(500)

	require.Nil(t, l.AddOrReplaceReaction("ghost", "conn-2", "👍"))
}
