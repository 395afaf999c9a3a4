package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// MovieCacheTTL is the time-to-live for cached movies.
	MovieCacheTTL = 24 * time.Hour

	movieCacheKeyPrefix = "movie"
)

// CachedMovie is the read model stored in Redis as a hash.
// Catalog entries never change once written, so entries are only ever
// overwritten with identical data.
type CachedMovie struct {
	ID               string
	Title            string
	Description      string
	ThumbnailRef     string
	VideoRef         string
	CreatedAt        time.Time
	StorageDirectory string
}

// MovieCache provides structured read/write operations for movie cache entries.
// Key format: "movie:{movieID}"
type MovieCache struct {
	client *RedisClient
}

// NewMovieCache creates a new MovieCache backed by the given RedisClient.
func NewMovieCache(r *RedisClient) *MovieCache {
	return &MovieCache{client: r}
}

// Get retrieves a cached movie by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *MovieCache) Get(ctx context.Context, id string) (*CachedMovie, error) {
	vals, err := c.client.Client().HGetAll(ctx, MovieKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedMovie{
		ID:               vals["id"],
		Title:            vals["title"],
		Description:      vals["description"],
		ThumbnailRef:     vals["thumbnail_ref"],
		VideoRef:         vals["video_ref"],
		CreatedAt:        createdAt,
		StorageDirectory: vals["storage_directory"],
	}, nil
}

// Set writes a cached movie as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *MovieCache) Set(ctx context.Context, m *CachedMovie) error {
	key := MovieKey(m.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", m.ID,
		"title", m.Title,
		"description", m.Description,
		"thumbnail_ref", m.ThumbnailRef,
		"video_ref", m.VideoRef,
		"created_at", m.CreatedAt.UTC().Format(time.RFC3339Nano),
		"storage_directory", m.StorageDirectory,
	)
	pipe.Expire(ctx, key, MovieCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// MovieKey builds the Redis key: "movie:{movieID}"
func MovieKey(id string) string {
	return movieCacheKeyPrefix + ":" + id
}
