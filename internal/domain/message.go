package domain

import "time"

// Reaction is a single per-user annotation on a message. A user has at
// most one reaction per message; reacting again replaces the emoji.
type Reaction struct {
	UserID string `json:"userId"`
	Emoji  string `json:"emoji"`
}

// Message is a chat message, public or private. The message ID is
// generated by the hub, never by storage. Sender is the username
// denormalized at creation time and not updated on rename.
type Message struct {
	ID          string     `json:"id"`
	Sender      string     `json:"sender"`
	SenderID    string     `json:"senderId"`
	Body        string     `json:"message"`
	Room        string     `json:"room"`
	IsPrivate   bool       `json:"isPrivate"`
	RecipientID string     `json:"recipientId,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	Delivered   bool       `json:"delivered"`
	Read        bool       `json:"read"`
	Edited      bool       `json:"edited"`
	Image       string     `json:"image,omitempty"`
	Reactions   []Reaction `json:"reactions"`
}

// Clone returns a copy of the message with its own reactions slice, so
// callers can hand it out without aliasing the log's writable record.
func (m *Message) Clone() *Message {
	c := *m
	c.Reactions = make([]Reaction, len(m.Reactions))
	copy(c.Reactions, m.Reactions)
	return &c
}
