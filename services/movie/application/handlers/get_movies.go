package handlers

import (
	"net/http"

	"github.com/ghuser/moviebox/pkg/httpx"
	appsvcs "github.com/ghuser/moviebox/services/movie/application/services"
)

// GetMoviesHandler handles GET /api/movies requests.
type GetMoviesHandler struct {
	svc *appsvcs.Services
}

// NewGetMoviesHandler returns a GetMoviesHandler backed by the given services.
func NewGetMoviesHandler(svc *appsvcs.Services) *GetMoviesHandler {
	return &GetMoviesHandler{svc: svc}
}

// Execute lists the catalog.
//
//	@Summary		List movies
//	@Description	Returns every catalog entry in upload order
//	@Tags			movies
//	@Produce		json
//	@Success		200	{array}		models.Movie
//	@Failure		500	{object}	httpx.MessageResponse
//	@Router			/api/movies [get]
func (h *GetMoviesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Movie.ListAll(r.Context()))
}
