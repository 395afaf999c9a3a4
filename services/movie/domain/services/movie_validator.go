package services

import (
	"fmt"
	"strings"

	"github.com/ghuser/moviebox/services/movie/domain"
	"github.com/ghuser/moviebox/services/movie/domain/models"
)

// ValidateMovieForCatalog performs the cross-field checks a Movie must pass
// before it may be appended to the catalog.
//
// Business rules:
//   - id, title and description are non-blank
//   - at least one of thumbnail or video resolved (ErrIncompleteAssets otherwise)
func ValidateMovieForCatalog(m models.Movie) error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("id must be set")
	}
	if strings.TrimSpace(m.Title) == "" || strings.TrimSpace(m.Description) == "" {
		return domain.ErrInvalidUpload
	}
	if !m.HasAsset() {
		return domain.ErrIncompleteAssets
	}
	if m.StorageDirectory == "" {
		return fmt.Errorf("storage directory must be set")
	}
	return nil
}
