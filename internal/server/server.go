// Package server boots the application: config, database, cache, storage,
// the websocket feed, the optional gRPC listener, and the HTTP server with
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/config"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/internal/kernel"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/cache"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/database"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/event"
	pkggrpc "github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/grpc"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/logger"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/storage"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/ws"
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Redis is an optimisation, not a dependency: log and keep going.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}

	storage.Connect()

	// Catalog change feed: every change event is mirrored to websocket
	// subscribers.
	hub := ws.NewHub()
	go hub.Run()
	for _, name := range []string{
		event.ProductCreated, event.ProductUpdated, event.ProductDeleted,
		event.CategoryCreated, event.CategoryUpdated, event.CategoryDeleted,
		event.OrderPlaced, event.OrderStatusChanged,
	} {
		name := name
		event.Listen(name, func(payload interface{}) {
			hub.PublishJSON(name, payload)
		})
	}

	// Optional gRPC health/reflection listener.
	if port := config.GRPCPort(); port != "" {
		grpcSrv, _, err := pkggrpc.Start(port)
		if err != nil {
			return err
		}
		defer pkggrpc.Stop(grpcSrv)
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           kernel.Handler(database.DB, hub),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
