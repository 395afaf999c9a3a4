package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ghuser/moviebox/pkg/logger"
	"github.com/ghuser/moviebox/services/movie/domain"
	"github.com/ghuser/moviebox/services/movie/domain/models"
	domainsvcs "github.com/ghuser/moviebox/services/movie/domain/services"
)

// SlotResolver turns one slot's inputs (staged file and/or URL) into the
// reference stored in the catalog.
type SlotResolver struct {
	uploadsDir string
	publicPath string
	log        logger.Logger
	now        func() time.Time
}

// NewSlotResolver returns a resolver writing into uploadsDir and producing
// references under publicPath (the mount point that serves uploadsDir).
func NewSlotResolver(uploadsDir, publicPath string, log logger.Logger) *SlotResolver {
	return &SlotResolver{
		uploadsDir: uploadsDir,
		publicPath: publicPath,
		log:        log,
		now:        time.Now,
	}
}

// Resolve applies the slot rules against the item directory dirName:
//   - a staged file wins: it is moved to "{slot}-{ms}-{name}{ext}" and the
//     public path of the new file is returned;
//   - otherwise a URL is returned verbatim and also written to "{slot}-url.txt";
//   - otherwise "" is returned and nothing is written.
//
// Failures are *domain.SlotError values.
func (r *SlotResolver) Resolve(ctx context.Context, slot models.Slot, file *models.UploadedFile, url, dirName string) (string, error) {
	itemDir := filepath.Join(r.uploadsDir, dirName)

	if file != nil {
		name := domainsvcs.StoredFileName(slot, r.now(), file.OriginalName)
		if err := moveFile(file.TempPath, filepath.Join(itemDir, name)); err != nil {
			return "", &domain.SlotError{Slot: slot.String(), Op: "move", Err: err}
		}
		r.log.DebugContext(ctx, "asset stored",
			"slot", slot, "file", name, "bytes", file.Size, "content_type", file.ContentType)
		return path.Join(r.publicPath, dirName, name), nil
	}

	if url != "" {
		sidecar := filepath.Join(itemDir, slot.SidecarName())
		if err := os.WriteFile(sidecar, []byte(url), 0o644); err != nil {
			return "", &domain.SlotError{Slot: slot.String(), Op: "write url sidecar", Err: err}
		}
		return url, nil
	}

	return "", nil
}

// moveFile renames src to dst, falling back to copy+remove when they sit on
// different filesystems.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	return out.Close()
}
