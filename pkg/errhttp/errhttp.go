// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapError for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/moviebox/pkg/httpx"
	"github.com/ghuser/moviebox/pkg/validator"
	moviedomain "github.com/ghuser/moviebox/services/movie/domain"
)

// Fixed client-facing messages. Server errors use the error text itself
// unless running in production.
const (
	MsgInvalidUpload    = "Title and description are required"
	MsgFieldTooLarge    = "Form field exceeds the maximum allowed size"
	MsgIncompleteAssets = "At least one of thumbnail or video must be provided"
	MsgMovieNotFound    = "Movie not found"
	MsgTooLarge         = "Upload exceeds the maximum allowed size"
)

// WriteError maps err to an HTTP status code and writes a {"message": ...}
// JSON response. Uses errors.Is() so wrapped sentinel errors are matched
// correctly. Defaults to 500 Internal Server Error for unrecognized errors;
// with isProduction set, 5xx messages are replaced by the status text.
func WriteError(w http.ResponseWriter, err error, isProduction bool) {
	status, msg := mapError(err)
	if msg == "" {
		msg = httpx.SafeError(err, status, isProduction)
	}

	resp := httpx.MessageResponse{Message: msg}
	if status == http.StatusBadRequest {
		if fields := validator.FormatValidationErrors(err); len(fields) > 0 {
			resp.Fields = fields
		}
	}
	httpx.JSON(w, status, resp)
}

// Status returns the HTTP status code WriteError would use for err.
func Status(err error) int {
	status, _ := mapError(err)
	return status
}

func mapError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, moviedomain.ErrMovieNotFound):
		return http.StatusNotFound, MsgMovieNotFound // 404
	case errors.Is(err, moviedomain.ErrInvalidUpload):
		return http.StatusBadRequest, MsgInvalidUpload // 400
	case errors.Is(err, moviedomain.ErrFieldTooLarge):
		return http.StatusBadRequest, MsgFieldTooLarge // 400
	case errors.Is(err, moviedomain.ErrIncompleteAssets):
		return http.StatusBadRequest, MsgIncompleteAssets // 400
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, MsgTooLarge // 413
	default:
		return http.StatusInternalServerError, "" // 500
	}
}
