package history

import (
	"sync"

	"github.com/kim254ke/Chat-App-Server/internal/domain"
)

// Log is the append-only, room-queryable message record with a bounded
// in-memory tail. Once the tail exceeds the limit the oldest entry is
// evicted; the durable mirror, when configured, keeps full history. The
// log owns the only writable message records; every accessor returns
// clones.
type Log struct {
	mu       sync.Mutex
	messages []*domain.Message
	limit    int
}

const DefaultLimit = 500

func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// Append adds a message to the tail, evicting the oldest entry when the
// buffer would exceed the limit.
func (l *Log) Append(msg *domain.Message) *domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg.Clone())
	if len(l.messages) > l.limit {
		l.messages = l.messages[1:]
	}
	return msg
}

// FindByID returns the message with the given ID, or nil.
func (l *Log) FindByID(id string) *domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	if m := l.find(id); m != nil {
		return m.Clone()
	}
	return nil
}

// QueryByRoom returns the room's messages in creation order. Private
// messages surface under their derived room identifier, so they match
// the same way public ones do.
func (l *Log) QueryByRoom(room string) []*domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Message, 0, len(l.messages))
	for _, m := range l.messages {
		if m.Room == room {
			out = append(out, m.Clone())
		}
	}
	return out
}

// QueryAll returns every retained message in creation order.
func (l *Log) QueryAll() []*domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*domain.Message, 0, len(l.messages))
	for _, m := range l.messages {
		out = append(out, m.Clone())
	}
	return out
}

// Remove deletes the message with the given ID, reporting whether it
// existed.
func (l *Log) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, m := range l.messages {
		if m.ID == id {
			l.messages = append(l.messages[:i], l.messages[i+1:]...)
			return true
		}
	}
	return false
}

// Update applies mutate to the message with the given ID under the log
// lock and returns the updated record, or nil if not found.
func (l *Log) Update(id string, mutate func(*domain.Message)) *domain.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := l.find(id)
	if m == nil {
		return nil
	}
	mutate(m)
	return m.Clone()
}

// Len reports the number of retained messages.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

func (l *Log) find(id string) *domain.Message {
	for _, m := range l.messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}
