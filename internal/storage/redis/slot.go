package storage

import (
	"context"
	"errors"
	"fmt"

	"xr_archive/internal/storage"

	"github.com/redis/go-redis/v9"
)

// Slot хранит весь список записей одним значением под одним ключом
type Slot struct {
	Client *Client
	key    string
}

func NewSlot(client *Client, key string) *Slot {
	return &Slot{Client: client, key: key}
}

func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	const op = "storage.redis.Slot.Load"

	val, err := s.Client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrSlotEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return []byte(val), nil
}

func (s *Slot) Save(ctx context.Context, data []byte) error {
	const op = "storage.redis.Slot.Save"

	if err := s.Client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
