package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Hit is the number of times a request path was served.
type Hit struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// Store keeps served-resource counters in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis hit store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// RecordHit increments the counter of path within mount.
func (s *Store) RecordHit(ctx context.Context, mount, path string) error {
	if err := s.client.ZIncrBy(ctx, HitsKey(mount), 1, path).Err(); err != nil {
		return fmt.Errorf("failed to record hit: %w", err)
	}
	return nil
}

// TopHits returns the n most served paths of mount, most served first.
func (s *Store) TopHits(ctx context.Context, mount string, n int64) ([]Hit, error) {
	if n <= 0 {
		return []Hit{}, nil
	}
	entries, err := s.client.ZRevRangeWithScores(ctx, HitsKey(mount), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top hits: %w", err)
	}

	hits := make([]Hit, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Path: member, Count: int64(e.Score)})
	}
	return hits, nil
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
