package app

import (
	"github.com/ghuser/moviebox/pkg/cache"
	"github.com/ghuser/moviebox/pkg/config"
	"github.com/ghuser/moviebox/pkg/events"
	"github.com/ghuser/moviebox/pkg/logger"
	"github.com/ghuser/moviebox/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "movie stored", "movie_id", id)
//	app.Logger.ErrorContext(ctx, "failed to append", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when REDIS_URL is empty
	Metrics  *telemetry.UploadMetrics
}
