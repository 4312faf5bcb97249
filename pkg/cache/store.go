package cache

import (
	"context"
	"encoding/json"
	"time"

	"dalil/pkg/logger"
	"dalil/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	pagePrefix = "page:"
	memoPrefix = "memo:"
	tagPrefix  = "tag:"
)

// Revalidator drops cached reads after a mutation. Paths invalidate cached
// public responses by prefix; tags invalidate memoized values.
type Revalidator interface {
	RevalidatePath(paths ...string)
	RevalidateTag(tags ...string)
}

// Store is the Redis-backed page cache and memo store shared by all services.
// A Store without a client caches nothing.
type Store struct {
	client  *redis.Client
	logger  *logger.Logger
	pageTTL time.Duration
}

func NewStore(client *redis.Client, log *logger.Logger, pageTTL time.Duration) *Store {
	return &Store{client: client, logger: log, pageTTL: pageTTL}
}

func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *Store) RevalidatePath(paths ...string) {
	if !s.Enabled() {
		return
	}
	ctx := context.Background()
	for _, path := range paths {
		deleted := 0
		iter := s.client.Scan(ctx, 0, pagePrefix+path+"*", 200).Iterator()
		for iter.Next(ctx) {
			if err := s.client.Del(ctx, iter.Val()).Err(); err == nil {
				deleted++
			}
		}
		if err := iter.Err(); err != nil {
			s.logger.Warn("Failed to revalidate path %s: %v", path, err)
			continue
		}
		metrics.CacheRevalidationsTotal.WithLabelValues("path").Inc()
		s.logger.Debug("Revalidated path %s (%d entries)", path, deleted)
	}
}

func (s *Store) RevalidateTag(tags ...string) {
	if !s.Enabled() {
		return
	}
	ctx := context.Background()
	for _, tag := range tags {
		setKey := tagPrefix + tag
		keys, err := s.client.SMembers(ctx, setKey).Result()
		if err != nil {
			s.logger.Warn("Failed to read tag %s: %v", tag, err)
			continue
		}
		keys = append(keys, setKey)
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("Failed to revalidate tag %s: %v", tag, err)
			continue
		}
		metrics.CacheRevalidationsTotal.WithLabelValues("tag").Inc()
	}
}

// FirstSeen reports whether key was not seen within ttl and marks it seen.
// Without Redis every call counts as first.
func (s *Store) FirstSeen(key string, ttl time.Duration) bool {
	if !s.Enabled() {
		return true
	}
	ok, err := s.client.SetNX(context.Background(), key, "1", ttl).Result()
	if err != nil {
		s.logger.Warn("Failed to check %s: %v", key, err)
		return true
	}
	return ok
}

// Remember returns the memoized value under key or computes it with load and
// stores it for ttl, registered under tag so RevalidateTag can drop it early.
// Cache failures never fail the read.
func Remember[T any](s *Store, key, tag string, ttl time.Duration, load func() (T, error)) (T, error) {
	if !s.Enabled() {
		return load()
	}

	ctx := context.Background()
	memoKey := memoPrefix + key

	if raw, err := s.client.Get(ctx, memoKey).Bytes(); err == nil {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("Failed to read memo %s: %v", key, err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return value, nil
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, memoKey, raw, ttl)
	if tag != "" {
		pipe.SAdd(ctx, tagPrefix+tag, memoKey)
		pipe.Expire(ctx, tagPrefix+tag, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("Failed to store memo %s: %v", key, err)
	}
	return value, nil
}
