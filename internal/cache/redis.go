package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sahabat-Khairat/sholat/internal/model"
)

// RedisStore keeps the resolved location as a JSON value without
// expiry. Preferred backend when a Redis address is configured.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(address, username, password string) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     address,
			Username: username,
			Password: password,
			DB:       0,
		}),
	}
}

func (s *RedisStore) Get(ctx context.Context) (*model.ResolvedLocation, error) {
	raw, err := s.rdb.Get(ctx, Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var loc model.ResolvedLocation
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, fmt.Errorf("redis get: corrupt payload: %w", err)
	}
	return &loc, nil
}

func (s *RedisStore) Set(ctx context.Context, loc model.ResolvedLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, Key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
