package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ghuser/moviebox/pkg/httpx"
	moviedomain "github.com/ghuser/moviebox/services/movie/domain"
	"github.com/ghuser/moviebox/services/movie/domain/models"
	appsvcs "github.com/ghuser/moviebox/services/movie/application/services"
)

// MaxTextFieldBytes caps each non-file multipart field.
const MaxTextFieldBytes = 64 << 10

// MsgUploaded is the message of a successful upload response.
const MsgUploaded = "Movie uploaded successfully"

// UploadResponse is returned on a stored upload.
type UploadResponse struct {
	Message    string       `json:"message" example:"Movie uploaded successfully"`
	Movie      models.Movie `json:"movie"`
	FolderPath string       `json:"folderPath" example:"1718000000000-My_Movie"`
} // @name UploadResponse

// PostUploadHandler handles POST /upload requests.
type PostUploadHandler struct {
	svc  *appsvcs.Services
	opts Options
}

// NewPostUploadHandler returns a PostUploadHandler backed by the given services.
func NewPostUploadHandler(svc *appsvcs.Services, opts Options) *PostUploadHandler {
	return &PostUploadHandler{svc: svc, opts: opts}
}

// Execute stores one movie upload.
//
//	@Summary		Upload movie
//	@Description	Stores a thumbnail and/or video (file or URL per slot) and appends the movie to the catalog
//	@Tags			movies
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			title			formData	string	true	"Movie title"
//	@Param			description		formData	string	true	"Movie description"
//	@Param			thumbnail		formData	file	false	"Thumbnail file"
//	@Param			thumbnailURL	formData	string	false	"Thumbnail URL, used when no file is sent"
//	@Param			video			formData	file	false	"Video file"
//	@Param			videoURL		formData	string	false	"Video URL, used when no file is sent"
//	@Success		200				{object}	UploadResponse
//	@Failure		400				{object}	httpx.MessageResponse
//	@Failure		413				{object}	httpx.MessageResponse
//	@Failure		500				{object}	httpx.MessageResponse
//	@Router			/upload [post]
func (h *PostUploadHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sub, staged, err := h.readForm(r)
	defer h.svc.Stager.Discard(staged...)
	if err != nil {
		h.opts.writeError(w, r, err)
		return
	}

	res, err := h.svc.Intake.Submit(r.Context(), sub)
	if err != nil {
		h.opts.writeError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, UploadResponse{
		Message:    MsgUploaded,
		Movie:      res.Movie,
		FolderPath: res.FolderPath,
	})
}

// readForm streams the multipart body. File parts go straight to the staging
// directory; the returned files must be discarded by the caller whether or
// not err is nil. The first file per slot wins, later ones are drained.
func (h *PostUploadHandler) readForm(r *http.Request) (models.Submission, []*models.UploadedFile, error) {
	var sub models.Submission
	var staged []*models.UploadedFile

	mr, err := r.MultipartReader()
	if err != nil {
		return sub, nil, fmt.Errorf("read multipart form: %w", err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return sub, staged, nil
		}
		if err != nil {
			return sub, staged, fmt.Errorf("read multipart form: %w", err)
		}

		if err := h.readPart(part, &sub, &staged); err != nil {
			_ = part.Close()
			return sub, staged, err
		}
		_ = part.Close()
	}
}

func (h *PostUploadHandler) readPart(part *multipart.Part, sub *models.Submission, staged *[]*models.UploadedFile) error {
	name := part.FormName()

	if part.FileName() != "" {
		slot := models.Slot(name)
		if !slot.Valid() || sub.File(slot) != nil {
			return nil
		}
		f, err := h.svc.Stager.Stage(part, slot, part.FileName(), part.Header.Get("Content-Type"))
		if err != nil {
			return err
		}
		*staged = append(*staged, f)
		if slot == models.SlotVideo {
			sub.Video = f
		} else {
			sub.Thumbnail = f
		}
		return nil
	}

	value, err := io.ReadAll(io.LimitReader(part, MaxTextFieldBytes+1))
	if err != nil {
		return fmt.Errorf("read field %s: %w", name, err)
	}
	if len(value) > MaxTextFieldBytes {
		return fmt.Errorf("%w: field %s exceeds %d bytes", moviedomain.ErrFieldTooLarge, name, MaxTextFieldBytes)
	}

	switch name {
	case "title":
		sub.Title = string(value)
	case "description":
		sub.Description = string(value)
	case models.SlotThumbnail.URLField():
		sub.ThumbnailURL = string(value)
	case models.SlotVideo.URLField():
		sub.VideoURL = string(value)
	}
	return nil
}
