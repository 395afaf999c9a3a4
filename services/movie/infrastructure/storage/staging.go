// Package storage materializes movie assets on the local filesystem: it
// stages incoming multipart files, then moves them into item directories.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ghuser/moviebox/services/movie/domain/models"
)

// StagingDirName is the directory under the uploads root that holds files
// whose request has not finished yet. Keeping it on the same filesystem as
// the item directories makes the later move a rename.
const StagingDirName = ".staging"

// Stager spools upload bodies into temporary files. A staged file is either
// moved by the SlotResolver or removed by Discard; nothing else touches it.
type Stager struct {
	dir string
}

// NewStager returns a Stager writing under <uploadsDir>/.staging.
func NewStager(uploadsDir string) *Stager {
	return &Stager{dir: filepath.Join(uploadsDir, StagingDirName)}
}

// Init creates the staging directory and clears leftovers from a previous run.
func (s *Stager) Init() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clear staging dir: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	return nil
}

// Dir returns the staging directory.
func (s *Stager) Dir() string {
	return s.dir
}

// Stage copies r into a new temp file and returns its handle.
// On error nothing is left behind.
func (s *Stager) Stage(r io.Reader, slot models.Slot, originalName, contentType string) (*models.UploadedFile, error) {
	f, err := os.CreateTemp(s.dir, string(slot)+"-*.part")
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}
	tempPath := f.Name()

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tempPath)
		return nil, fmt.Errorf("stage %s: %w", slot, err)
	}

	return &models.UploadedFile{
		Slot:         slot,
		TempPath:     tempPath,
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         n,
	}, nil
}

// Discard removes staged files that were not moved. Nil handles and files
// that are already gone are ignored.
func (s *Stager) Discard(files ...*models.UploadedFile) {
	for _, f := range files {
		if f == nil {
			continue
		}
		// Anything left behind is cleared by Init on the next start.
		_ = os.Remove(f.TempPath)
	}
}
