package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/moviebox/pkg/logger"
	"github.com/ghuser/moviebox/services/movie/domain/events"
)

// Subscriber is the part of the event bus used to register handlers.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// MovieCreatedHandler consumes movie.created: it warms the read cache with
// the new entry and writes an audit log line.
type MovieCreatedHandler struct {
	movies *MovieService
	log    logger.Logger
}

// NewMovieCreatedHandler returns a handler that warms movies' cache.
func NewMovieCreatedHandler(movies *MovieService, log logger.Logger) *MovieCreatedHandler {
	return &MovieCreatedHandler{movies: movies, log: log}
}

// Handle decodes one event. Undecodable payloads are logged and acknowledged.
func (h *MovieCreatedHandler) Handle(ctx context.Context, msg *message.Message) error {
	var evt events.MovieCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		h.log.ErrorContext(ctx, "discarding undecodable movie.created", "message_id", msg.UUID, "error", err)
		return nil
	}

	h.movies.Warm(ctx, evt.Movie)
	h.log.InfoContext(ctx, "movie created",
		"event_id", evt.EventID,
		"movie_id", evt.Movie.ID,
		"title", evt.Movie.Title,
	)
	return nil
}

// RegisterSubscribers attaches the movie event handlers to sub. Subscriber
// errors are logged until ctx is done or the bus closes.
func RegisterSubscribers(ctx context.Context, sub Subscriber, svcs *Services, log logger.Logger) error {
	h := NewMovieCreatedHandler(svcs.Movie, log)
	errCh, err := sub.Subscribe(ctx, events.TopicMovieCreated, h.Handle)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", events.TopicMovieCreated, err)
	}
	go func() {
		for err := range errCh {
			log.ErrorContext(ctx, "subscriber error", "topic", events.TopicMovieCreated, "error", err)
		}
	}()
	return nil
}
