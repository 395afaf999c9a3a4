package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMovieKey(t *testing.T) {
	if got := MovieKey("1700000000000-ab12cd34"); got != "movie:1700000000000-ab12cd34" {
		t.Fatalf("unexpected key: %s", got)
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestMovieCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	mc := NewMovieCache(rc)
	ctx := context.Background()
	id := "test-" + time.Now().Format("150405.000000000")
	t.Cleanup(func() { _ = rc.Client().Del(context.Background(), MovieKey(id)).Err() })

	t.Run("Get_Miss", func(t *testing.T) {
		_, err := mc.Get(ctx, id)
		if !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil, got %v", err)
		}
	})

	t.Run("Set_Get_RoundTrip", func(t *testing.T) {
		in := &CachedMovie{
			ID:               id,
			Title:            "Title",
			Description:      "Desc",
			VideoRef:         "https://cdn.example/v.mp4",
			CreatedAt:        time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC),
			StorageDirectory: "1704164645006-Title",
		}
		if err := mc.Set(ctx, in); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := mc.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title != in.Title || got.VideoRef != in.VideoRef || got.ThumbnailRef != "" || !got.CreatedAt.Equal(in.CreatedAt) {
			t.Fatalf("round trip mismatch: %+v", got)
		}
		ttl, err := rc.Client().TTL(ctx, MovieKey(id)).Result()
		if err != nil || ttl <= 0 {
			t.Fatalf("expected positive TTL, got %v (err %v)", ttl, err)
		}
	})

	t.Run("EvictedIsMiss", func(t *testing.T) {
		if err := rc.Client().Del(ctx, MovieKey(id)).Err(); err != nil {
			t.Fatalf("Del failed: %v", err)
		}
		if _, err := mc.Get(ctx, id); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after eviction, got %v", err)
		}
	})
}
