package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/moviebox/pkg/cache"
	"github.com/ghuser/moviebox/pkg/logger"
	"github.com/ghuser/moviebox/services/movie/domain/models"
	"github.com/ghuser/moviebox/services/movie/domain/repositories"
)

// MovieCache is the read-through cache in front of the catalog file.
type MovieCache interface {
	Get(ctx context.Context, id string) (*pkgcache.CachedMovie, error)
	Set(ctx context.Context, m *pkgcache.CachedMovie) error
}

// MovieService answers catalog queries.
// Single-movie reads are served from Redis when a cache is configured.
type MovieService struct {
	catalog repositories.Catalog
	cache   MovieCache // nil when Redis is disabled
	log     logger.Logger
}

// NewMovieService returns a MovieService. Pass a nil cache to read the
// catalog file directly.
func NewMovieService(catalog repositories.Catalog, movieCache MovieCache, log logger.Logger) *MovieService {
	return &MovieService{catalog: catalog, cache: movieCache, log: log}
}

// ListAll returns every catalog entry in insertion order.
func (s *MovieService) ListAll(ctx context.Context) []models.Movie {
	return s.catalog.ReadAll(ctx)
}

// GetByID retrieves a movie using a read-through cache pattern:
//  1. Check Redis first.
//  2. On miss (or cache error), read the catalog.
//  3. Warm the cache with the catalog result.
func (s *MovieService) GetByID(ctx context.Context, id string) (models.Movie, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "movie cache read failed", "movie_id", id, "error", err)
		}
	}

	m, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return models.Movie{}, fmt.Errorf("get movie: %w", err)
	}

	s.Warm(ctx, m)
	return m, nil
}

// Warm stores m in the cache. Failures are logged, never returned: the
// catalog stays authoritative.
func (s *MovieService) Warm(ctx context.Context, m models.Movie) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCached(m)); err != nil {
		s.log.WarnContext(ctx, "movie cache write failed", "movie_id", m.ID, "error", err)
	}
}

func toCached(m models.Movie) *pkgcache.CachedMovie {
	return &pkgcache.CachedMovie{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		ThumbnailRef:     m.ThumbnailRef,
		VideoRef:         m.VideoRef,
		CreatedAt:        m.CreatedAt,
		StorageDirectory: m.StorageDirectory,
	}
}

func fromCached(c *pkgcache.CachedMovie) models.Movie {
	return models.Movie{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		ThumbnailRef:     c.ThumbnailRef,
		VideoRef:         c.VideoRef,
		CreatedAt:        c.CreatedAt,
		StorageDirectory: c.StorageDirectory,
	}
}
