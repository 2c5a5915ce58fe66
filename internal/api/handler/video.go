package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/internal/service"
)

// Client-facing messages.
const (
	msgMissingURL     = "URL is required"
	msgUnsupportedURL = "Not a valid Twitter/X link"
	msgVideoNotFound  = "Video not found. Please try again later."
	msgResolveFailed  = "Could not fetch video information. Please try again."
	msgDownloadFailed = "Download failed"
	msgInvalidBody    = "invalid request body"

	downloadFilename = "twitter-video.mp4"
)

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	videoSvc *service.VideoService
	logger   *slog.Logger
}

// NewVideoHandler creates a new video handler.
func NewVideoHandler(videoSvc *service.VideoService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		videoSvc: videoSvc,
		logger:   logger,
	}
}

// ResolveRequest is the JSON request body for video resolution.
type ResolveRequest struct {
	URL string `json:"url"`
}

// FailureResponse is returned when a resolution cannot produce a video.
type FailureResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Resolve handles POST /api/get-video
func (h *VideoHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, FailureResponse{Error: msgInvalidBody})
		return
	}

	info, err := h.videoSvc.Resolve(r.Context(), req.URL)
	if err != nil {
		var resolveErr *domain.ResolveError
		switch {
		case errors.Is(err, domain.ErrMissingURL):
			h.writeJSON(w, http.StatusBadRequest, FailureResponse{Error: msgMissingURL})
		case errors.Is(err, domain.ErrUnsupportedURL):
			h.writeJSON(w, http.StatusBadRequest, FailureResponse{Error: msgUnsupportedURL})
		case errors.As(err, &resolveErr):
			h.writeJSON(w, http.StatusInternalServerError, FailureResponse{
				Error:   msgVideoNotFound,
				Details: resolveErr.Details,
			})
		default:
			h.logger.Error("resolve failed", "url", req.URL, "error", err)
			h.writeJSON(w, http.StatusInternalServerError, FailureResponse{Error: msgResolveFailed})
		}
		return
	}

	h.writeJSON(w, http.StatusOK, info)
}

// Download handles GET /api/download
func (h *VideoHandler) Download(w http.ResponseWriter, r *http.Request) {
	mediaURL := r.URL.Query().Get("url")
	quality := domain.ParseQuality(r.URL.Query().Get("quality"))

	dl, err := h.videoSvc.OpenDownload(r.Context(), mediaURL, quality)
	if err != nil {
		if errors.Is(err, domain.ErrMissingURL) {
			h.writeError(w, http.StatusBadRequest, msgMissingURL)
			return
		}
		h.logger.Error("download failed", "url", mediaURL, "error", err)
		h.writeError(w, http.StatusInternalServerError, msgDownloadFailed)
		return
	}
	defer dl.Body.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	if dl.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(dl.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	written, err := io.Copy(w, dl.Body)
	if err != nil {
		// Headers are already sent; the client sees a truncated body.
		h.logger.Warn("download relay interrupted",
			"url", mediaURL,
			"written_bytes", written,
			"error", err,
		)
		return
	}

	h.logger.Info("download relayed",
		"url", mediaURL,
		"bytes", written,
		"detected_type", dl.DetectedType,
	)
}

func (h *VideoHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *VideoHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
