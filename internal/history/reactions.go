package history

import "github.com/kim254ke/Chat-App-Server/internal/domain"

// AddOrReplaceReaction upserts a user's reaction on a message: a user
// holds at most one reaction per message, and reacting again replaces
// the emoji in place. Returns the updated message, or nil when the
// message is unknown (callers treat that as a silent no-op).
func (l *Log) AddOrReplaceReaction(messageID, userID, emoji string) *domain.Message {
	return l.Update(messageID, func(m *domain.Message) {
		for i := range m.Reactions {
			if m.Reactions[i].UserID == userID {
				m.Reactions[i].Emoji = emoji
				return
			}
		}
		m.Reactions = append(m.Reactions, domain.Reaction{UserID: userID, Emoji: emoji})
	})
}
