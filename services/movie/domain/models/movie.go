package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Movie is one catalog entry. It is created once by the intake pipeline and
// never modified afterwards.
type Movie struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ThumbnailRef     string    `json:"thumbnailRef"`
	VideoRef         string    `json:"videoRef"`
	CreatedAt        time.Time `json:"createdAt"`
	StorageDirectory string    `json:"storageDirectory"`
}

// HasAsset reports whether at least one slot resolved to a reference.
func (m Movie) HasAsset() bool {
	return m.ThumbnailRef != "" || m.VideoRef != ""
}

// Metadata is the durability record written as metadata.json inside the item
// directory. It is not the index; the catalog is.
type Metadata struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	ThumbnailRef string    `json:"thumbnailRef"`
	VideoRef     string    `json:"videoRef"`
}

// Metadata projects the movie onto its on-disk metadata record.
func (m Movie) Metadata() Metadata {
	return Metadata{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		ThumbnailRef: m.ThumbnailRef,
		VideoRef:     m.VideoRef,
	}
}

// NewMovieID derives an id from the creation time plus 8 random hex chars,
// so two submissions within the same millisecond still get distinct ids.
func NewMovieID(createdAt time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s", createdAt.UnixMilli(), suffix)
}

// Submission is one upload request after the multipart body has been staged.
type Submission struct {
	Title        string        `json:"title" validate:"notblank"`
	Description  string        `json:"description" validate:"notblank"`
	Thumbnail    *UploadedFile `json:"-"`
	ThumbnailURL string        `json:"thumbnailURL"`
	Video        *UploadedFile `json:"-"`
	VideoURL     string        `json:"videoURL"`
}

// File returns the staged file for the slot, or nil.
func (s Submission) File(slot Slot) *UploadedFile {
	if slot == SlotVideo {
		return s.Video
	}
	return s.Thumbnail
}

// URL returns the URL supplied for the slot exactly as sent, or "" when the
// field was absent or blank.
func (s Submission) URL(slot Slot) string {
	v := s.ThumbnailURL
	if slot == SlotVideo {
		v = s.VideoURL
	}
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

// SubmitResult is what the intake pipeline returns for a stored upload.
type SubmitResult struct {
	Movie      Movie
	FolderPath string
}
