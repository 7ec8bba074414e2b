package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache: miss")

type Store interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RedisStore keeps JSON encoded values in redis.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func (r *RedisStore) Get(ctx context.Context, key string, dst interface{}) error {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (r *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.prefix+key, data, ttl).Err()
}

func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

func NewRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

// NopStore never caches anything.
type NopStore struct{}

func (NopStore) Get(context.Context, string, interface{}) error {
	return ErrMiss
}

func (NopStore) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
