package services

import (
	"fmt"

	"github.com/ghuser/moviebox/pkg/app"
	"github.com/ghuser/moviebox/pkg/cache"
	"github.com/ghuser/moviebox/services/movie/infrastructure/persistence/jsonfile"
	"github.com/ghuser/moviebox/services/movie/infrastructure/storage"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Intake  *IntakeService
	Movie   *MovieService
	Stager  *storage.Stager
	Catalog *jsonfile.CatalogStore
}

// New wires all movie application services with infrastructure from the
// Application container. It creates the catalog file and resets the staging
// directory, so call it once at startup.
func New(a *app.Application) (*Services, error) {
	cfg := a.Config

	catalog := jsonfile.NewCatalogStore(cfg.CatalogPath, a.Logger)
	if err := catalog.Init(); err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	stager := storage.NewStager(cfg.UploadsDir)
	if err := stager.Init(); err != nil {
		return nil, fmt.Errorf("init staging: %w", err)
	}

	var movieCache MovieCache
	if a.Redis != nil {
		movieCache = cache.NewMovieCache(a.Redis)
	}

	var publisher EventPublisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}

	resolver := storage.NewSlotResolver(cfg.UploadsDir, cfg.PublicUploadsPath, a.Logger)

	return &Services{
		Intake:  NewIntakeService(catalog, resolver, cfg.UploadsDir, publisher, a.Metrics, a.Logger),
		Movie:   NewMovieService(catalog, movieCache, a.Logger),
		Stager:  stager,
		Catalog: catalog,
	}, nil
}
