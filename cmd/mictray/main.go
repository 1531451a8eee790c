package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petems/mictray/internal/app"
	"github.com/petems/mictray/internal/audio"
	"github.com/petems/mictray/internal/config"
	"github.com/petems/mictray/internal/logging"
	"github.com/petems/mictray/internal/permissions"
	"github.com/petems/mictray/internal/tray"
	"github.com/rs/zerolog"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	// Load config from XDG/Library/AppData
	cfg, err := config.Load()
	if err != nil {
		// Use default logger if config fails to load
		log := logging.New()
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize logger with configured level
	log := logging.NewWithLevel(cfg.LogLevel)

	// macOS gates input device visibility behind microphone approval
	if err := permissions.EnsureMicrophoneAccess(); err != nil {
		log.Warn().Err(err).Msg("Microphone permission missing; device list may be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize device catalog
	catalog, err := audio.New(log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize audio")
	}

	application := app.New(app.Config{
		Catalog: catalog,
		Config:  cfg,
		Logger:  log,
	})
	application.Start(ctx)

	trayUI := tray.New(application, log, Version, Commit)

	// Setup shutdown signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Shutting down...")
		shutdown(application, log)
		os.Exit(0)
	}()

	log.Info().Msg("mictray starting...")

	// Start tray UI - MUST run on main thread
	if err := trayUI.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Tray error")
	}

	// Tray loop ended via the Quit menu item
	shutdown(application, log)
}

func shutdown(application *app.App, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := application.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}
