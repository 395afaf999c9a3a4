package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/moviebox/services/movie/domain/models"
)

// TopicMovieCreated is the Watermill topic published after a catalog append.
const TopicMovieCreated = "movie.created"

// MovieCreatedEvent is published once a Movie has been appended to the catalog.
// It carries the full entry so consumers never need to re-read the catalog file.
type MovieCreatedEvent struct {
	EventID    uuid.UUID    `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int          `json:"version"`  // Schema version; increment on breaking changes
	Movie      models.Movie `json:"movie"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewMovieCreatedEvent wraps m in a version-1 event.
func NewMovieCreatedEvent(m models.Movie) MovieCreatedEvent {
	return MovieCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Movie:      m,
		OccurredAt: m.CreatedAt,
	}
}
