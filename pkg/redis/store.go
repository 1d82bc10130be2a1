package redis

import (
	"context"
	"errors"
	"time"

	rdClient "github.com/redis/go-redis/v9"
)

// Store is a small key/value cache on top of a redis client. Every key is
// stored under prefix.
type Store struct {
	client rdClient.UniversalClient
	prefix string
}

func NewStore(client rdClient.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, rdClient.Nil) {
		return "", ErrKeyNotFound.WithDetail("key", key)
	}
	if err != nil {
		return "", ErrStore.WithDetail("op", "GET").WithDetail("key", key).WithCause(err)
	}
	return val, nil
}

// Set stores value under key. A zero ttl keeps the key until it is deleted.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return ErrStore.WithDetail("op", "SET").WithDetail("key", key).WithCause(err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return ErrStore.WithDetail("op", "DEL").WithDetail("key", key).WithCause(err)
	}
	return nil
}

// Remember returns the cached value of key, computing and storing it with
// fn on a miss.
func (s *Store) Remember(ctx context.Context, key string, ttl time.Duration, fn func() (string, error)) (string, error) {
	val, err := s.Get(ctx, key)
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return "", err
	}

	val, err = fn()
	if err != nil {
		return "", err
	}
	if err := s.Set(ctx, key, val, ttl); err != nil {
		return "", err
	}
	return val, nil
}
