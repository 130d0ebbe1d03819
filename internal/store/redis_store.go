package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kim254ke/Chat-App-Server/internal/config"
	"github.com/kim254ke/Chat-App-Server/internal/domain"
)

// redisStore implements MessageStore on Redis.
//
// Key patterns:
//
//	{prefix}:msg:{id}      STRING<json>   - one message record
//	{prefix}:room:{room}   LIST<id>       - ids in append order per room
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore dials Redis and returns a MessageStore backed by it.
func NewRedisStore(cfg config.MirrorConfig) (MessageStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisStore{client: client, prefix: cfg.KeyPrefix}, nil
}

func (s *redisStore) msgKey(id string) string {
	return fmt.Sprintf("%s:msg:%s", s.prefix, id)
}

func (s *redisStore) roomKey(room string) string {
	return fmt.Sprintf("%s:room:%s", s.prefix, room)
}

func (s *redisStore) Create(ctx context.Context, msg *domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.msgKey(msg.ID), data, 0)
	pipe.RPush(ctx, s.roomKey(msg.Room), msg.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist message: %w", err)
	}
	return nil
}

// FindByRoom returns up to limit of the room's most recent messages, in
// creation order.
func (s *redisStore) FindByRoom(ctx context.Context, room string, limit int64) ([]*domain.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	ids, err := s.client.LRange(ctx, s.roomKey(room), -limit, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list room messages: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.msgKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	out := make([]*domain.Message, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Deleted record still referenced by the room list.
			continue
		}
		var m domain.Message
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			continue
		}
		out = append(out, &m)
	}
	return out, nil
}

func (s *redisStore) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	data, err := s.client.Get(ctx, s.msgKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}

	var m domain.Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &m, nil
}

func (s *redisStore) UpdateByID(ctx context.Context, id string, patch Patch) (*domain.Message, error) {
	m, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Body != nil {
		m.Body = *patch.Body
	}
	if patch.Read != nil {
		m.Read = *patch.Read
	}
	if patch.Edited != nil {
		m.Edited = *patch.Edited
	}
	if patch.Reactions != nil {
		m.Reactions = patch.Reactions
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := s.client.Set(ctx, s.msgKey(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}
	return m, nil
}

func (s *redisStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	m, err := s.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.msgKey(id))
	pipe.LRem(ctx, s.roomKey(m.Room), 1, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	return true, nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
