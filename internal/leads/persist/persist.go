// Package persist snapshots the lead store into Redis as a single JSON
// document. It is a crash-recovery convenience, not a consistency layer:
// the in-memory store stays authoritative.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Snapshotter saves and loads full-store snapshots.
type Snapshotter struct {
	client *redis.Client
	key    string
	log    *logger.Logger
}

// New connects to Redis using the configured URL.
func New(cfg config.SnapshotConfig, log *logger.Logger) (*Snapshotter, error) {
	opts, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewWithClient(redis.NewClient(opts), cfg.GetSnapshotKey(), log), nil
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *redis.Client, key string, log *logger.Logger) *Snapshotter {
	return &Snapshotter{client: client, key: key, log: log}
}

// Save serializes all leads into the snapshot key.
func (s *Snapshotter) Save(ctx context.Context, leads []*domain.Lead) error {
	payload, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot back. A missing key yields an empty slice.
func (s *Snapshotter) Load(ctx context.Context) ([]*domain.Lead, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var leads []*domain.Lead
	if err := json.Unmarshal(payload, &leads); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return leads, nil
}

// Ping verifies connectivity at boot.
func (s *Snapshotter) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection.
func (s *Snapshotter) Close() error {
	return s.client.Close()
}
