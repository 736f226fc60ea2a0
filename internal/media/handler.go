package media

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/feedline/service/internal/blob"
	"github.com/feedline/service/internal/response"
)

// Handler serves stored media blobs over HTTP.
type Handler struct {
	store blob.Store
	log   *slog.Logger
}

// NewHandler creates a new media Handler.
func NewHandler(store blob.Store, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// GetMedia godoc
//
//	@Summary		Download media
//	@Description	Streams the binary content of a stored media blob. The Content-Type is taken from stored metadata, falling back to filename heuristics.
//	@Tags			media
//	@Produce		octet-stream
//	@Param			mediaId	path	string	true	"Blob identifier"
//	@Success		200	{file}		binary
//	@Failure		400	{string}	string	"malformed identifier"
//	@Failure		404	{string}	string	"blob not found"
//	@Failure		500	{string}	string	"store read failure"
//	@Router			/media/{mediaId} [get]
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	mediaID := chi.URLParam(r, "mediaId")

	// Unlike the post endpoints this route distinguishes failure modes:
	// malformed identifiers fail fast without touching the store, absence is
	// 404, and stream failures are 500.
	exists, err := h.store.Exists(r.Context(), mediaID)
	if errors.Is(err, blob.ErrInvalidID) {
		h.log.Warn("invalid media id", "mediaId", mediaID)
		response.Text(w, http.StatusBadRequest, "invalid media id")
		return
	}
	if err != nil {
		h.log.Error("media existence check failed", "mediaId", mediaID, "error", err)
		response.Text(w, http.StatusInternalServerError, "failed to read media")
		return
	}
	if !exists {
		h.log.Warn("media not found", "mediaId", mediaID)
		response.Text(w, http.StatusNotFound, "media not found")
		return
	}

	rc, info, err := h.store.Download(r.Context(), mediaID)
	if errors.Is(err, blob.ErrNotFound) {
		response.Text(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		h.log.Error("media download failed", "mediaId", mediaID, "error", err)
		response.Text(w, http.StatusInternalServerError, "failed to read media")
		return
	}
	defer rc.Close()

	contentType := ResolveContentType(info.ContentType, info.Filename)
	h.log.Info("serving media", "mediaId", mediaID, "contentType", contentType, "size", info.Size)

	// CORS headers come from the router-level middleware only; setting the
	// origin header here again would duplicate it on this route.
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.Filename))
	w.Header().Set("Accept-Ranges", "bytes")

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone already; all that is left is to log the failure.
		h.log.Error("media stream interrupted", "mediaId", mediaID, "error", err)
	}
}
