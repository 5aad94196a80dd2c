// Package main is the entry point for the travel planner API server.
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

	"github.com/pkordes/travel-planner/internal/app"
	"github.com/pkordes/travel-planner/internal/catalog"
	"github.com/pkordes/travel-planner/internal/config"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/metrics"
	"github.com/pkordes/travel-planner/internal/middleware"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.LoadFile(".env")
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	collector := metrics.NewCollector("travel_planner")

	openCtx, cancelOpen := context.WithTimeout(context.Background(), 30*time.Second)
	itineraryRepo, kv, err := app.OpenRepo(openCtx, cfg, logger, collector.ObserveRetry)
	cancelOpen()
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("storage ready", "driver", cfg.Storage.Driver, "sealed", cfg.StoragePassphrase != "")

	// --- Store ------------------------------------------------------------
	// The store serves the seed collection until the initial load resolves;
	// the server accepts traffic immediately.
	itineraries := store.New(itineraryRepo, store.Options{
		Logger:  logger,
		Metrics: collector,
	})
	itineraries.Start()

	destinations, err := catalog.Default()
	if err != nil {
		slog.Error("failed to load destination catalog", "error", err)
		os.Exit(1)
	}
	svc := service.NewItineraryService(itineraries, destinations)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → metrics → CORS → rate limit → body size.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(collector.Middleware)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler)
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", collector.Handler())
	srvHandlers := handler.NewServer(svc, svc, svc, itineraries,
		handler.WithLogger(logger),
		handler.WithAllowedOrigins(cfg.CORSOrigins),
	)
	srvHandlers.Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout is left at zero: the watch websocket holds its connection
	// open and sets its own per-write deadlines.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

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
	}
	// Write whatever the last request changed before the process exits.
	if err := itineraries.Close(ctx); err != nil {
		slog.Error("failed to flush itineraries", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
