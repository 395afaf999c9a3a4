package services

import (
	"errors"
	"testing"

	"github.com/ghuser/moviebox/services/movie/domain"
	"github.com/ghuser/moviebox/services/movie/domain/models"
)

func TestValidateMovieForCatalog(t *testing.T) {
	valid := func() models.Movie {
		return models.Movie{
			ID:               "1700000000123-abcdef01",
			Title:            "Title",
			Description:      "Description",
			ThumbnailRef:     "/uploads/1700000000123-Title/thumbnail-1700000000124-a.jpg",
			StorageDirectory: "1700000000123-Title",
		}
	}

	t.Run("valid movie returns nil", func(t *testing.T) {
		if err := ValidateMovieForCatalog(valid()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("url-only video is enough", func(t *testing.T) {
		m := valid()
		m.ThumbnailRef = ""
		m.VideoRef = "https://example.com/v.mp4"
		if err := ValidateMovieForCatalog(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no assets is incomplete", func(t *testing.T) {
		m := valid()
		m.ThumbnailRef = ""
		if err := ValidateMovieForCatalog(m); !errors.Is(err, domain.ErrIncompleteAssets) {
			t.Fatalf("expected ErrIncompleteAssets, got %v", err)
		}
	})

	t.Run("blank title is invalid", func(t *testing.T) {
		m := valid()
		m.Title = "  "
		if err := ValidateMovieForCatalog(m); !errors.Is(err, domain.ErrInvalidUpload) {
			t.Fatalf("expected ErrInvalidUpload, got %v", err)
		}
	})

	t.Run("missing id returns error", func(t *testing.T) {
		m := valid()
		m.ID = ""
		if err := ValidateMovieForCatalog(m); err == nil {
			t.Fatal("expected error for missing id")
		}
	})

	t.Run("missing directory returns error", func(t *testing.T) {
		m := valid()
		m.StorageDirectory = ""
		if err := ValidateMovieForCatalog(m); err == nil {
			t.Fatal("expected error for missing storage directory")
		}
	})
}
