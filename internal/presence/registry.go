package presence

import (
	"sync"
	"time"

	"github.com/kim254ke/Chat-App-Server/internal/domain"
)

// Registry owns the connection ID -> User mapping. All reads and writes
// go through the registry lock so callers always observe a consistent
// snapshot. Identities are retained across disconnects (Online flips
// false) so a reconnecting user gets their previous room back.
type Registry struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	defaultRoom string
}

// RoomChange records a completed room transition.
type RoomChange struct {
	User    *domain.User
	OldRoom string
	NewRoom string
}

func NewRegistry(defaultRoom string) *Registry {
	return &Registry{
		users:       make(map[string]*domain.User),
		defaultRoom: defaultRoom,
	}
}

// Join registers or reactivates the identity for a connection. A rejoin
// updates the username and preserves the prior room; a fresh join lands
// in the default room. Username validation happens before this call.
func (r *Registry) Join(connID, username string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[connID]; ok {
		u.Username = username
		u.Online = true
		if u.Room == "" {
			u.Room = r.defaultRoom
		}
		return snapshot(u)
	}

	u := &domain.User{
		ID:       connID,
		Username: username,
		Room:     r.defaultRoom,
		Online:   true,
		JoinedAt: time.Now().UTC(),
	}
	r.users[connID] = u
	return snapshot(u)
}

// Leave marks the connection's identity offline and returns it, or nil
// if the connection never joined.
func (r *Registry) Leave(connID string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[connID]
	if !ok {
		return nil
	}
	u.Online = false
	return snapshot(u)
}

// Get returns the identity for a connection, online or not, or nil.
func (r *Registry) Get(connID string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[connID]
	if !ok {
		return nil
	}
	return snapshot(u)
}

// ChangeRoom moves the user to newRoom and returns the transition.
// Unknown connections and no-op moves to the current room return nil;
// target validation against the room directory happens before this call.
func (r *Registry) ChangeRoom(connID, newRoom string) *RoomChange {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[connID]
	if !ok || u.Room == newRoom {
		return nil
	}

	old := u.Room
	u.Room = newRoom
	return &RoomChange{User: snapshot(u), OldRoom: old, NewRoom: newRoom}
}

// ListOnline returns all online users, filtered to one room when room is
// non-empty. The whole list is built under the lock, one snapshot.
func (r *Registry) ListOnline(room string) []*domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if !u.Online {
			continue
		}
		if room != "" && u.Room != room {
			continue
		}
		out = append(out, snapshot(u))
	}
	return out
}

// RoomOf returns the current room for a connection, or "" if unknown.
func (r *Registry) RoomOf(connID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[connID]; ok {
		return u.Room
	}
	return ""
}

func snapshot(u *domain.User) *domain.User {
	c := *u
	return &c
}
