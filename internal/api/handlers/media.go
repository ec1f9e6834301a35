package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
)

const mediaCacheControl = "public, max-age=31536000, immutable"

var mediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".avif": "image/avif",
	".ico":  "image/x-icon",
}

// MediaContentType picks the type of a served file from its extension alone.
func MediaContentType(name string) string {
	if ct, ok := mediaTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}

	return "application/octet-stream"
}

type MediaHandler struct {
	media backend.MediaAPI
}

func NewMediaHandler(media backend.MediaAPI) *MediaHandler {
	return &MediaHandler{media: media}
}

// ServeMedia godoc
//	@Summary		Product images
//	@Description	Streams a file from backend media storage, keeping the backend's status code.
//	@Tags			Media
//	@Produce		octet-stream
//	@Param			path	path	string	true	"Media path"
//	@Success		200		"File contents"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid path"
//	@Failure		502		{object}	response.ErrorResponse	"Media storage unreachable"
//	@Router			/media/{path} [get]
func (h *MediaHandler) ServeMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		name := r.PathValue("path")
		if name == "" || strings.Contains(name, "..") {
			logger.Warn("Rejected media path", slog.String("path", name))
			response.Error(w, errors.BadRequestError("Invalid media path"))
			return
		}

		resp, err := h.media.FetchMedia(r.Context(), name)
		if err != nil {
			logger.Error("Failed to fetch media", slog.String("path", name), slog.Any("error", err))
			response.Error(w, errors.FromUpstream(err, "fetch media"))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			w.Header().Set("Content-Type", MediaContentType(name))
			w.Header().Set("Cache-Control", mediaCacheControl)
		} else {
			// error bodies are whatever the backend rendered, not the file
			contentType := resp.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(resp.StatusCode)

		if _, err := io.Copy(w, resp.Body); err != nil {
			logger.Warn("Media stream interrupted", slog.String("path", name), slog.Any("error", err))
		}
	}
}
