package store

import (
	"context"
	"errors"

	"github.com/kim254ke/Chat-App-Server/internal/domain"
)

// ErrNotFound is returned when a record does not exist in the store.
var ErrNotFound = errors.New("message not found")

// Patch describes a partial update to a stored message. Nil fields are
// left unchanged.
type Patch struct {
	Body      *string
	Read      *bool
	Edited    *bool
	Reactions []domain.Reaction
}

// MessageStore is the durable mirror of the in-memory message log.
// The mirror is best-effort: the hub treats memory as the source of
// truth and logs, rather than propagates, mirror failures.
type MessageStore interface {
	Create(ctx context.Context, msg *domain.Message) error
	FindByRoom(ctx context.Context, room string, limit int64) ([]*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	UpdateByID(ctx context.Context, id string, patch Patch) (*domain.Message, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Close() error
}
