package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/moviebox/pkg/logger"
	"github.com/ghuser/moviebox/pkg/telemetry"
	pkgvalidator "github.com/ghuser/moviebox/pkg/validator"
	moviedomain "github.com/ghuser/moviebox/services/movie/domain"
	"github.com/ghuser/moviebox/services/movie/domain/events"
	"github.com/ghuser/moviebox/services/movie/domain/models"
	"github.com/ghuser/moviebox/services/movie/domain/repositories"
	domainsvcs "github.com/ghuser/moviebox/services/movie/domain/services"
)

// MetadataFileName is the per-item durability record.
const MetadataFileName = "metadata.json"

// maxDirAttempts bounds the "-2", "-3" suffixes tried when two uploads map
// to the same storage directory name.
const maxDirAttempts = 100

// AssetResolver turns one slot's inputs into the reference stored in the catalog.
type AssetResolver interface {
	Resolve(ctx context.Context, slot models.Slot, file *models.UploadedFile, url, dirName string) (string, error)
}

// EventPublisher is the part of the event bus the intake pipeline needs.
type EventPublisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// IntakeService runs one upload end to end: validate, create the item
// directory, resolve both slots, write metadata.json, append to the catalog.
type IntakeService struct {
	catalog    repositories.Catalog
	resolver   AssetResolver
	uploadsDir string
	publisher  EventPublisher // nil disables movie.created
	metrics    *telemetry.UploadMetrics
	log        logger.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// NewIntakeService wires the pipeline. publisher and metrics may be nil.
func NewIntakeService(
	catalog repositories.Catalog,
	resolver AssetResolver,
	uploadsDir string,
	publisher EventPublisher,
	metrics *telemetry.UploadMetrics,
	log logger.Logger,
) *IntakeService {
	return &IntakeService{
		catalog:    catalog,
		resolver:   resolver,
		uploadsDir: uploadsDir,
		publisher:  publisher,
		metrics:    metrics,
		log:        log,
		tracer:     otel.Tracer(telemetry.InstrumentationName),
		now:        time.Now,
	}
}

// Submit stores one upload and appends it to the catalog.
//
// ErrInvalidUpload is returned before anything touches the disk. When no slot
// resolves, the item directory is removed and ErrIncompleteAssets returned.
// A slot failure (a *domain.SlotError) also removes the directory and never
// reaches the catalog.
func (s *IntakeService) Submit(ctx context.Context, sub models.Submission) (*models.SubmitResult, error) {
	ctx, span := s.tracer.Start(ctx, "movie.submit")
	defer span.End()

	res, err := s.submit(ctx, span, sub)
	s.metrics.RecordUpload(ctx, resultLabel(err))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res, nil
}

func (s *IntakeService) submit(ctx context.Context, span trace.Span, sub models.Submission) (*models.SubmitResult, error) {
	if err := pkgvalidator.Validate(&sub); err != nil {
		return nil, fmt.Errorf("%w: %w", moviedomain.ErrInvalidUpload, err)
	}

	createdAt := s.now().UTC()
	m := models.Movie{
		ID:          models.NewMovieID(createdAt),
		Title:       sub.Title,
		Description: sub.Description,
		CreatedAt:   createdAt,
	}

	dirName, err := s.createItemDir(domainsvcs.StorageDirName(createdAt, sub.Title))
	if err != nil {
		return nil, err
	}
	m.StorageDirectory = dirName
	itemDir := filepath.Join(s.uploadsDir, dirName)
	span.SetAttributes(
		attribute.String("movie.id", m.ID),
		attribute.String("movie.dir", m.StorageDirectory),
	)

	for _, slot := range models.Slots {
		file := sub.File(slot)
		ref, err := s.resolver.Resolve(ctx, slot, file, sub.URL(slot), m.StorageDirectory)
		if err != nil {
			s.removeItemDir(ctx, itemDir)
			return nil, err
		}
		if file != nil {
			s.metrics.RecordFile(ctx, slot.String(), file.Size)
		}
		if slot == models.SlotVideo {
			m.VideoRef = ref
		} else {
			m.ThumbnailRef = ref
		}
	}

	if err := writeMetadata(filepath.Join(itemDir, MetadataFileName), m.Metadata()); err != nil {
		return nil, err
	}

	if err := domainsvcs.ValidateMovieForCatalog(m); err != nil {
		if errors.Is(err, moviedomain.ErrIncompleteAssets) {
			s.removeItemDir(ctx, itemDir)
		}
		return nil, err
	}

	if err := s.catalog.Append(ctx, m); err != nil {
		return nil, fmt.Errorf("append movie: %w", err)
	}

	s.log.InfoContext(ctx, "movie stored",
		"movie_id", m.ID,
		"dir", m.StorageDirectory,
		"has_thumbnail", m.ThumbnailRef != "",
		"has_video", m.VideoRef != "",
	)
	s.publishCreated(ctx, m)

	return &models.SubmitResult{Movie: m, FolderPath: m.StorageDirectory}, nil
}

// publishCreated is best effort: the catalog append already succeeded.
func (s *IntakeService) publishCreated(ctx context.Context, m models.Movie) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, events.TopicMovieCreated, events.NewMovieCreatedEvent(m)); err != nil {
		s.log.WarnContext(ctx, "failed to publish movie.created", "movie_id", m.ID, "error", err)
	}
}

// createItemDir creates a fresh directory for one item. An existing directory
// always belongs to another upload, so a taken name gets a numeric suffix
// instead of being shared.
func (s *IntakeService) createItemDir(base string) (string, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads directory: %w", err)
	}
	name := base
	for i := 2; ; i++ {
		err := os.Mkdir(filepath.Join(s.uploadsDir, name), 0o755)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) || i > maxDirAttempts {
			return "", fmt.Errorf("create item directory: %w", err)
		}
		name = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *IntakeService) removeItemDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.log.WarnContext(ctx, "failed to remove item directory", "dir", dir, "error", err)
	}
}

func writeMetadata(path string, md models.Metadata) error {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return telemetry.ResultOK
	case errors.Is(err, moviedomain.ErrInvalidUpload):
		return telemetry.ResultInvalid
	case errors.Is(err, moviedomain.ErrIncompleteAssets):
		return telemetry.ResultIncomplete
	default:
		return telemetry.ResultError
	}
}
