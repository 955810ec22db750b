// Package dedup provides per-day dispatch markers used to suppress duplicate
// report jobs when the daily trigger fires more than once on the same
// regional calendar date.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL keeps a marker alive past the end of its calendar day so a late
// duplicate trigger shortly after midnight UTC is still caught.
const DefaultTTL = 48 * time.Hour

// NopMarker claims every job. It is the dispatcher's marker unless Redis
// dedup is configured.
type NopMarker struct{}

func (NopMarker) Claim(context.Context, string, string) (bool, error) { return true, nil }
func (NopMarker) Release(context.Context, string, string) error       { return nil }

// RedisMarker claims a (date, job) pair with SET NX.
type RedisMarker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisMarker creates a marker with the default "dispatch:" key prefix.
func NewRedisMarker(client redis.UniversalClient) *RedisMarker {
	return &RedisMarker{client: client, prefix: "dispatch:", ttl: DefaultTTL}
}

// NewRedisMarkerWithPrefix creates a marker with a custom key prefix and TTL.
func NewRedisMarkerWithPrefix(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisMarker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisMarker{client: client, prefix: prefix, ttl: ttl}
}

func (m *RedisMarker) key(date, job string) string {
	return m.prefix + date + ":" + job
}

// Claim returns true if this caller is the first to claim job for date.
func (m *RedisMarker) Claim(ctx context.Context, date, job string) (bool, error) {
	ok, err := m.client.SetNX(ctx, m.key(date, job), time.Now().UTC().Format(time.RFC3339), m.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: claim %s/%s: %w", date, job, err)
	}
	return ok, nil
}

// Release drops a claim so a later trigger on the same date can retry the job.
func (m *RedisMarker) Release(ctx context.Context, date, job string) error {
	if err := m.client.Del(ctx, m.key(date, job)).Err(); err != nil {
		return fmt.Errorf("dedup: release %s/%s: %w", date, job, err)
	}
	return nil
}
