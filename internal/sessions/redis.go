package sessions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const redisPrefix = "yelpcamp:session:"

// RedisStorage is a fiber.Storage backed by Redis.
type RedisStorage struct {
	rdb *redis.Client
}

var _ fiber.Storage = (*RedisStorage)(nil)

// Options holds configuration for the Redis client.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStorage connects and pings Redis.
func NewRedisStorage(opts Options) (*RedisStorage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Println("Redis session storage initialized")
	return &RedisStorage{rdb: rdb}, nil
}

// Get returns nil, nil for a missing key.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.rdb.Get(context.Background(), redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis Get error for key '%s': %w", key, err)
	}
	return val, nil
}

func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := s.rdb.Set(context.Background(), redisPrefix+key, val, exp).Err(); err != nil {
		return fmt.Errorf("redis Set error for key '%s': %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := s.rdb.Del(context.Background(), redisPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis Del error for key '%s': %w", key, err)
	}
	return nil
}

// Reset deletes every session key.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.rdb.Scan(ctx, 0, redisPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis Del error for key '%s': %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis Scan error: %w", err)
	}
	return nil
}

func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
