package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the movie domain. Use errors.Is() to check these.
var (
	// ErrMovieNotFound indicates no catalog entry has the requested id.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrInvalidUpload indicates title or description is missing.
	ErrInvalidUpload = errors.New("invalid upload")

	// ErrFieldTooLarge indicates a multipart text field exceeded its size cap.
	ErrFieldTooLarge = errors.New("form field too large")

	// ErrIncompleteAssets indicates neither the thumbnail nor the video slot resolved.
	ErrIncompleteAssets = errors.New("no thumbnail or video provided")

	// ErrAssetResolution indicates a staged file could not be moved or a URL
	// sidecar could not be written.
	ErrAssetResolution = errors.New("asset resolution failed")

	// ErrCatalogIO indicates the catalog file could not be written.
	ErrCatalogIO = errors.New("catalog io failed")
)

// SlotError records which asset slot failed and why.
// errors.Is(err, ErrAssetResolution) reports true for any SlotError.
type SlotError struct {
	Slot string
	Op   string
	Err  error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Slot, e.Op, e.Err)
}

func (e *SlotError) Unwrap() error { return e.Err }

func (e *SlotError) Is(target error) bool { return target == ErrAssetResolution }
