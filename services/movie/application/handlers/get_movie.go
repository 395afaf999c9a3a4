package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/moviebox/pkg/httpx"
	appsvcs "github.com/ghuser/moviebox/services/movie/application/services"
)

// GetMovieHandler handles GET /api/movies/{id} requests.
type GetMovieHandler struct {
	svc  *appsvcs.Services
	opts Options
}

// NewGetMovieHandler returns a GetMovieHandler backed by the given services.
func NewGetMovieHandler(svc *appsvcs.Services, opts Options) *GetMovieHandler {
	return &GetMovieHandler{svc: svc, opts: opts}
}

// Execute returns one catalog entry.
//
//	@Summary		Get movie
//	@Description	Returns the catalog entry with the given id
//	@Tags			movies
//	@Produce		json
//	@Param			id	path		string	true	"Movie ID"
//	@Success		200	{object}	models.Movie
//	@Failure		404	{object}	httpx.MessageResponse
//	@Failure		500	{object}	httpx.MessageResponse
//	@Router			/api/movies/{id} [get]
func (h *GetMovieHandler) Execute(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Movie.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.opts.writeError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}
