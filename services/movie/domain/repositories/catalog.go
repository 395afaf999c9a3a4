package repositories

import (
	"context"

	"github.com/ghuser/moviebox/services/movie/domain/models"
)

// Catalog is the persistence interface for the movie index.
// The domain layer owns this interface; infrastructure implements it.
// Every mutation goes through Append so serialization lives in one place.
type Catalog interface {
	// ReadAll returns every entry in insertion order. An unreadable or corrupt
	// backing store yields an empty slice, never an error.
	ReadAll(ctx context.Context) []models.Movie

	// Append adds m at the end of the catalog.
	Append(ctx context.Context, m models.Movie) error

	// FindByID returns the entry with the given id or ErrMovieNotFound.
	FindByID(ctx context.Context, id string) (models.Movie, error)
}
