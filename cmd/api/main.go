// Package main is the entry point for the tabiplan API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/knorii/tabiplan/internal/config"
	"github.com/knorii/tabiplan/internal/domain"
	"github.com/knorii/tabiplan/internal/handler"
	"github.com/knorii/tabiplan/internal/middleware"
	"github.com/knorii/tabiplan/internal/service"
	"github.com/knorii/tabiplan/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	// The whole application state is one JSON document on disk. Load it once
	// at startup: a corrupt document is fatal here rather than on the first
	// request, and a legacy document is migrated before traffic arrives.
	st := store.New(cfg.DataDir)
	doc, err := st.Load()
	if err != nil {
		slog.Error("failed to load document", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	slog.Info("document loaded",
		"schema_version", doc.SchemaVersion,
		"trips", len(doc.Trips),
		"current_trip", doc.CurrentTripID,
	)
	defer st.Subscribe(func(d domain.Document) {
		slog.Debug("document saved", "updated_at", d.UpdatedAt)
	})()

	// --- Services and handlers --------------------------------------------
	server := handler.NewServer(
		service.NewTripService(st),
		service.NewScheduleService(st),
		service.NewLocationService(st),
		service.NewExpenseService(st),
		service.NewTaskService(st),
		service.NewUserService(st),
		service.NewSettingsService(st),
		st,
	)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit read/idle timeouts prevent slowloris and resource exhaustion.
	// WriteTimeout stays zero: /events holds its connection open indefinitely.
	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
