// Package cartstore persists carts in Redis: one key per cart owner holding
// the JSON-serialized line-item list. Every save rewrites the whole value, so
// concurrent writers are last-write-wins.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/tubarao/storefront/internal/cart"
)

// SchemaVersion guards the persisted payload shape. A payload with a
// different version is discarded and the cart starts empty.
const SchemaVersion = 1

type payload struct {
	Version int             `json:"version"`
	Items   []cart.LineItem `json:"items"`
}

type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(address string) *RedisStore {
	return &RedisStore{
		Client: redis.NewClient(&redis.Options{Addr: address}),
	}
}

func key(owner string) string { return "cart:" + owner }

func (s *RedisStore) Load(ctx context.Context, owner string) ([]cart.LineItem, error) {
	data, err := s.Client.Get(ctx, key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Version != SchemaVersion {
		return nil, nil
	}
	return p.Items, nil
}

func (s *RedisStore) Save(ctx context.Context, owner string, items []cart.LineItem) error {
	data, err := json.Marshal(payload{Version: SchemaVersion, Items: items})
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, key(owner), data, 0).Err()
}
