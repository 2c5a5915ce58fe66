package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconidentify/xfetch/internal/api"
	"github.com/iconidentify/xfetch/internal/api/handler"
	"github.com/iconidentify/xfetch/internal/config"
	"github.com/iconidentify/xfetch/internal/downloader"
	"github.com/iconidentify/xfetch/internal/resolver"
	"github.com/iconidentify/xfetch/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("xfetch %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting xfetch",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize dependencies
	chain := resolver.NewDefaultChain(cfg, logger)
	dl := downloader.NewHTTPDownloader(cfg.Download, logger)

	names := make([]string, 0, len(chain.Providers()))
	for _, p := range chain.Providers() {
		if p.Enabled() {
			names = append(names, p.Name())
		}
	}
	logger.Info("resolver chain ready", "providers", names)

	videoSvc := service.NewVideoService(chain, dl, logger)

	// Initialize handlers
	videoHandler := handler.NewVideoHandler(videoSvc, logger)
	healthHandler := handler.NewHealthHandler(cfg.Server.PublicDir)

	// Setup router
	router := api.NewRouter(videoHandler, healthHandler, cfg.Server.PublicDir, logger)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server",
			"addr", srv.Addr,
			"api", fmt.Sprintf("http://localhost:%d/api/get-video", cfg.Server.Port),
		)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
