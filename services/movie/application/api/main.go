package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/moviebox/pkg/app"
	"github.com/ghuser/moviebox/pkg/config"
	"github.com/ghuser/moviebox/pkg/httpx"
	"github.com/ghuser/moviebox/services/movie/application/handlers"
	appsvcs "github.com/ghuser/moviebox/services/movie/application/services"
)

// StatusMessage is reported by GET /api/status.
const StatusMessage = "Server is running"

// MovieRoutes registers the upload endpoint, the catalog read endpoints and
// the static mount for stored assets on the provided chi router.
func MovieRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	opts := handlers.Options{
		Log:          a.Logger,
		IsProduction: a.Config.Environment == config.EnvProduction,
	}

	r.Post("/upload", handlers.NewPostUploadHandler(svcs, opts).Execute)
	r.Handle(a.Config.PublicUploadsPath+"/*", httpx.StaticDir(a.Config.PublicUploadsPath, a.Config.UploadsDir))

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", httpx.StatusHandler(StatusMessage))
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", handlers.NewGetMoviesHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetMovieHandler(svcs, opts).Execute)
		})
	})
}
