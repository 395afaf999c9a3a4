// Package jsonfile implements the movie catalog as a single pretty-printed
// JSON array on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ghuser/moviebox/pkg/logger"
	"github.com/ghuser/moviebox/services/movie/domain"
	"github.com/ghuser/moviebox/services/movie/domain/models"
	"github.com/ghuser/moviebox/services/movie/domain/repositories"
)

var _ repositories.Catalog = (*CatalogStore)(nil)

var errCorrupt = errors.New("catalog is not a JSON array of movies")

// CatalogStore implements repositories.Catalog against a JSON file.
//
// Appends are serialized by mu and replace the file via write-temp-then-rename,
// so readers never observe a half-written catalog. Only one process may own
// the file; there is no cross-process lock.
type CatalogStore struct {
	path string
	log  logger.Logger
	mu   sync.Mutex
	now  func() time.Time
}

// NewCatalogStore returns a CatalogStore for the file at path. Call Init
// before first use.
func NewCatalogStore(path string, log logger.Logger) *CatalogStore {
	return &CatalogStore{path: path, log: log, now: time.Now}
}

// Path returns the backing file location.
func (s *CatalogStore) Path() string {
	return s.path
}

// Init creates the backing file containing an empty array if it does not exist.
func (s *CatalogStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create catalog directory: %w", domain.ErrCatalogIO, err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: stat catalog: %w", domain.ErrCatalogIO, err)
	}
	if err := s.write([]models.Movie{}); err != nil {
		return err
	}
	s.log.Info("catalog initialized", "path", s.path)
	return nil
}

// ReadAll returns every catalog entry in insertion order. An unreadable or
// corrupt file is logged and reported as an empty catalog.
func (s *CatalogStore) ReadAll(ctx context.Context) []models.Movie {
	movies, err := s.load()
	if err != nil {
		s.log.WarnContext(ctx, "catalog unreadable, serving empty list", "path", s.path, "error", err)
		return []models.Movie{}
	}
	return movies
}

// Append adds m to the end of the catalog and rewrites the file.
//
// A missing file is treated as empty. A corrupt file is moved aside to
// "<path>.corrupt-<unixms>" before the new collection is written. A file that
// exists but cannot be read fails the append rather than being overwritten.
func (s *CatalogStore) Append(ctx context.Context, m models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movies, err := s.load()
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		movies = []models.Movie{}
	case errors.Is(err, errCorrupt):
		aside := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().UnixMilli())
		if rerr := os.Rename(s.path, aside); rerr != nil {
			return fmt.Errorf("%w: quarantine corrupt catalog: %w", domain.ErrCatalogIO, rerr)
		}
		s.log.WarnContext(ctx, "corrupt catalog moved aside", "path", s.path, "moved_to", aside, "error", err)
		movies = []models.Movie{}
	default:
		return fmt.Errorf("%w: read catalog: %w", domain.ErrCatalogIO, err)
	}

	movies = append(movies, m)
	if err := s.write(movies); err != nil {
		return err
	}
	s.log.DebugContext(ctx, "catalog appended", "movie_id", m.ID, "entries", len(movies))
	return nil
}

// FindByID returns the entry with the given id or domain.ErrMovieNotFound.
func (s *CatalogStore) FindByID(ctx context.Context, id string) (models.Movie, error) {
	for _, m := range s.ReadAll(ctx) {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Movie{}, domain.ErrMovieNotFound
}

// Ping reports whether the backing file is present and is a regular file.
func (s *CatalogStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("catalog stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("catalog %s is not a regular file", s.path)
	}
	return nil
}

func (s *CatalogStore) load() ([]models.Movie, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var movies []models.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

func (s *CatalogStore) write(movies []models.Movie) error {
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal catalog: %w", domain.ErrCatalogIO, err)
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCatalogIO, err)
	}
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp: %w", err)
	}
	return nil
}
