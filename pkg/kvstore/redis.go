package kvstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "vyapar:store:"

// Redis stores keys in a Redis instance so several operator hosts can share
// one admin session. Keys live without TTL; token expiry is discovered
// server-side, same as the other drivers.
type Redis struct {
	rdb *redis.Client
	ctx context.Context
}

// OpenRedis connects and verifies the connection with a ping.
func OpenRedis(addr, password string) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kvstore: redis ping: %w", err)
	}
	return &Redis{rdb: rdb, ctx: ctx}, nil
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.rdb.Get(r.ctx, redisPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key, value string) error {
	return r.rdb.Set(r.ctx, redisPrefix+key, value, 0).Err()
}

func (r *Redis) Delete(key string) error {
	return r.rdb.Del(r.ctx, redisPrefix+key).Err()
}
