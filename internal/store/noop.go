package store

import (
	"context"

	"github.com/kim254ke/Chat-App-Server/internal/domain"
)

// noopStore is used when no mirror is configured. Chat stays fully
// functional; history simply does not survive the process.
type noopStore struct{}

// NewNoopStore returns a MessageStore that discards everything.
func NewNoopStore() MessageStore {
	return noopStore{}
}

func (noopStore) Create(context.Context, *domain.Message) error { return nil }

func (noopStore) FindByRoom(context.Context, string, int64) ([]*domain.Message, error) {
	return nil, nil
}

func (noopStore) FindByID(context.Context, string) (*domain.Message, error) {
	return nil, ErrNotFound
}

func (noopStore) UpdateByID(context.Context, string, Patch) (*domain.Message, error) {
	return nil, ErrNotFound
}

func (noopStore) DeleteByID(context.Context, string) (bool, error) { return false, nil }

func (noopStore) Close() error { return nil }
