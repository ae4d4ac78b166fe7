// Package redis persists consultations in Redis as JSON documents with a TTL.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/livewell-ai/livewell/session"
)

// Store keeps consultations in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore connects to Redis and verifies the connection.
func NewStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{client: client, ttl: ttl}, nil
}

func key(id string) string { return "livewell:consultation:" + id }

func (s *Store) Save(ctx context.Context, c session.Consultation) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal consultation: %w", err)
	}
	if err := s.client.Set(ctx, key(c.ID), body, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (session.Consultation, error) {
	body, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Consultation{}, session.ErrNotFound
	}
	if err != nil {
		return session.Consultation{}, fmt.Errorf("redis get: %w", err)
	}
	var c session.Consultation
	if err := json.Unmarshal(body, &c); err != nil {
		return session.Consultation{}, fmt.Errorf("unmarshal consultation: %w", err)
	}
	return c, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error { return s.client.Close() }
