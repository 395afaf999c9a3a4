package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/moviebox/pkg/validator"
	moviedomain "github.com/ghuser/moviebox/services/movie/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrMovieNotFound", moviedomain.ErrMovieNotFound, http.StatusNotFound},
		{"ErrInvalidUpload", moviedomain.ErrInvalidUpload, http.StatusBadRequest},
		{"ErrFieldTooLarge", moviedomain.ErrFieldTooLarge, http.StatusBadRequest},
		{"ErrIncompleteAssets", moviedomain.ErrIncompleteAssets, http.StatusBadRequest},
		{"ErrAssetResolution", moviedomain.ErrAssetResolution, http.StatusInternalServerError},
		{"ErrCatalogIO", moviedomain.ErrCatalogIO, http.StatusInternalServerError},
		{"SlotError", &moviedomain.SlotError{Slot: "video", Op: "move", Err: errors.New("disk full")}, http.StatusInternalServerError},
		{"wrapped ErrMovieNotFound", fmt.Errorf("get movie: %w", moviedomain.ErrMovieNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidUpload", fmt.Errorf("%w: title", moviedomain.ErrInvalidUpload), http.StatusBadRequest},
		{"body too large", fmt.Errorf("read part: %w", &http.MaxBytesError{Limit: 10}), http.StatusRequestEntityTooLarge},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err, false)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := Status(tt.err); got != tt.wantStatus {
				t.Fatalf("Status() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	return body
}

func TestWriteError_NotFoundMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("find: %w", moviedomain.ErrMovieNotFound), false)

	body := decode(t, w)
	if body["message"] != "Movie not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestWriteError_ServerMessage(t *testing.T) {
	err := fmt.Errorf("append: %w", moviedomain.ErrCatalogIO)

	w := httptest.NewRecorder()
	WriteError(w, err, false)
	if got := decode(t, w)["message"]; got != err.Error() {
		t.Fatalf("expected raw error in development, got %v", got)
	}

	w = httptest.NewRecorder()
	WriteError(w, err, true)
	if got := decode(t, w)["message"]; got != "Internal Server Error" {
		t.Fatalf("expected generic message in production, got %v", got)
	}
}

func TestWriteError_ValidationFields(t *testing.T) {
	type form struct {
		Title string `json:"title" validate:"notblank"`
	}
	verr := validator.Validate(&form{Title: " "})
	err := fmt.Errorf("%w: %w", moviedomain.ErrInvalidUpload, verr)

	w := httptest.NewRecorder()
	WriteError(w, err, true)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	body := decode(t, w)
	if body["message"] != MsgInvalidUpload {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	fields, ok := body["fields"].(map[string]any)
	if !ok || fields["title"] == nil {
		t.Fatalf("expected fields.title, got %v", body["fields"])
	}
}

func TestWriteError_NoFieldsWithoutValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, moviedomain.ErrIncompleteAssets, false)

	body := decode(t, w)
	if _, ok := body["fields"]; ok {
		t.Fatal("fields must be omitted when there are no field errors")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, moviedomain.ErrMovieNotFound, false)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestWriteError_FieldTooLargeMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("%w: field description exceeds 65536 bytes", moviedomain.ErrFieldTooLarge), false)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decode(t, w)["message"]; got != MsgFieldTooLarge {
		t.Fatalf("unexpected message: %v", got)
	}
}
