package typing

import "sync"

// RoomResolver reports the current room for a connection, or "" if the
// connection has no identity. Satisfied by the presence registry.
type RoomResolver interface {
	RoomOf(connID string) string
}

// Tracker holds the ephemeral connection ID -> username map of users
// currently composing input. Entries carry no room of their own: the
// room is resolved through the registry at query time.
type Tracker struct {
	mu       sync.Mutex
	typing   map[string]string
	resolver RoomResolver
}

func NewTracker(resolver RoomResolver) *Tracker {
	return &Tracker{
		typing:   make(map[string]string),
		resolver: resolver,
	}
}

// Start upserts the typing entry for a connection. Idempotent.
func (t *Tracker) Start(connID, username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.typing[connID] = username
}

// Stop removes the typing entry if present. No-op otherwise.
func (t *Tracker) Stop(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.typing, connID)
}

// ActiveInRoom returns the usernames typing in room, excluding
// excludeConnID. Each entry's room is resolved at call time, so a user
// who moved rooms since marking typing no longer surfaces in the old one.
func (t *Tracker) ActiveInRoom(room, excludeConnID string) []string {
	t.mu.Lock()
	entries := make(map[string]string, len(t.typing))
	for id, name := range t.typing {
		entries[id] = name
	}
	t.mu.Unlock()

	out := make([]string, 0, len(entries))
	for id, name := range entries {
		if id == excludeConnID {
			continue
		}
		if t.resolver.RoomOf(id) != room {
			continue
		}
		out = append(out, name)
	}
	return out
}
