// Package handlers holds the HTTP handlers of the movie bounded context.
package handlers

import (
	"net/http"

	"github.com/ghuser/moviebox/pkg/errhttp"
	"github.com/ghuser/moviebox/pkg/logger"
	"github.com/ghuser/moviebox/pkg/telemetry"
)

// Options carries what every movie handler needs besides the services.
type Options struct {
	Log          logger.Logger
	IsProduction bool
}

// writeError logs server-side failures, reports them to Sentry and writes
// the mapped {"message": ...} response.
func (o Options) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status := errhttp.Status(err); status >= http.StatusInternalServerError {
		o.Log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		telemetry.CaptureError(r.Context(), err)
	} else {
		o.Log.InfoContext(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	errhttp.WriteError(w, err, o.IsProduction)
}
