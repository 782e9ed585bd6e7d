package api

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/service"
)

// multipartMemory is how much of an upload is buffered in memory before
// the rest spills to temporary files.
const multipartMemory = 8 << 20

// MediaHandler handles media-related HTTP requests.
type MediaHandler struct {
	mediaService   service.MediaService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewMediaHandler creates a new MediaHandler. Upload bodies larger than
// maxUploadBytes are rejected with 413.
func NewMediaHandler(mediaService service.MediaService, maxUploadBytes int64, logger *slog.Logger) *MediaHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MediaHandler")
	}
	return &MediaHandler{
		mediaService:   mediaService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "media_handler")),
	}
}

// ListMedia handles GET /api/media.
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	media, err := h.mediaService.ListMedia(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if media == nil {
		media = []domain.Media{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, media)
}

// GetMedia handles GET /api/media/{id}.
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	media, err := h.mediaService.GetMedia(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, media)
}

// UploadMedia handles POST /api/media. The body is multipart with the
// fields title, description and file. The owner is always the caller.
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, err := identityFromRequest(r)
	if err != nil {
		log.Warn("identity not found in request context")
		HandleAPIError(w, r, err)
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	req, err := parseUploadForm(r)
	if r.MultipartForm != nil {
		defer func() {
			if rmErr := r.MultipartForm.RemoveAll(); rmErr != nil {
				log.Warn("failed to remove multipart temp files", "error", rmErr)
			}
		}()
	}
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	file, err := req.File.Open()
	if err != nil {
		HandleAPIError(w, r, fmt.Errorf("failed to open uploaded file: %w", err))
		return
	}
	defer func() { _ = file.Close() }()

	media, err := h.mediaService.UploadMedia(r.Context(), identity, service.Upload{
		Title:       req.Title,
		Description: req.Description,
		Body:        file,
		Size:        req.File.Size,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, MediaCreatedResponse{
		Message:  "New media added.",
		MediaID:  media.ID,
		Filename: media.Filename,
	})
}

// parseUploadForm reads the multipart body into an UploadMediaRequest.
// A body that is not multipart yields an empty request, so the missing
// fields are reported by validation.
func parseUploadForm(r *http.Request) (*UploadMediaRequest, error) {
	req := &UploadMediaRequest{}

	err := r.ParseMultipartForm(multipartMemory)
	switch {
	case err == nil:
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		return req, nil
	case errors.Is(err, multipart.ErrMessageTooLarge):
		return nil, &http.MaxBytesError{Limit: multipartMemory}
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, maxErr
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidRequestBody, err)
	}

	form := r.MultipartForm
	req.Title = firstValue(form.Value["title"])
	req.Description = firstValue(form.Value["description"])
	if files := form.File["file"]; len(files) > 0 {
		req.File = files[0]
	}
	return req, nil
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// UpdateMedia handles PUT /api/media/{id}. Only the owner or an admin may
// change title or description.
func (h *MediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, err := identityFromRequest(r)
	if err != nil {
		log.Warn("identity not found in request context")
		HandleAPIError(w, r, err)
		return
	}

	id, err := parsePathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateMediaRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	media, err := h.mediaService.UpdateMedia(r.Context(), identity, id, domain.MediaUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MediaUpdatedResponse{
		Message: "Media updated.",
		Media:   media,
	})
}

// DeleteMedia handles DELETE /api/media/{id}.
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, err := identityFromRequest(r)
	if err != nil {
		log.Warn("identity not found in request context")
		HandleAPIError(w, r, err)
		return
	}

	id, err := parsePathID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.mediaService.DeleteMedia(r.Context(), identity, id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Media deleted."})
}
