package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisSlot struct {
	rdb *redis.Client
	key string
}

// NewRedisSlot stores the document under a single Redis key, preserving
// whole-value read/write semantics.
func NewRedisSlot(rdb *redis.Client, name string) Slot {
	return &redisSlot{rdb: rdb, key: "slot:" + name}
}

func (r *redisSlot) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *redisSlot) Write(ctx context.Context, data []byte) error {
	return r.rdb.Set(ctx, r.key, data, 0).Err()
}

func (r *redisSlot) Delete(ctx context.Context) error {
	return r.rdb.Del(ctx, r.key).Err()
}
