package api

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/xfetch/internal/api/handler"
	mw "github.com/iconidentify/xfetch/internal/api/middleware"
	"github.com/iconidentify/xfetch/pkg/ui"
)

// NewRouter creates the HTTP router with all routes configured. Files under
// publicDir are served at / when the directory exists; otherwise / serves the
// embedded frontend.
func NewRouter(
	videoHandler *handler.VideoHandler,
	healthHandler *handler.HealthHandler,
	publicDir string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath) // Normalize paths (e.g., //api/health -> /api/health)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))
	r.Use(mw.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Live)
		r.Get("/stats", healthHandler.Stats)

		r.Post("/get-video", videoHandler.Resolve)
		r.Get("/download", videoHandler.Download)
	})

	if fi, err := os.Stat(publicDir); publicDir != "" && err == nil && fi.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(publicDir)))
		return r
	}

	logger.Info("static directory not found, serving embedded frontend", "dir", publicDir)
	r.Get("/", serveIndex)
	return r
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(ui.IndexHTML)
}
