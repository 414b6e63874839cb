package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/reel/internal/repositories"
	"github.com/desertthunder/reel/internal/server"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/urfave/cli/v3"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the movie collection web server",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Serve,
	}
}

// Serve starts the web application: validates configuration, opens the
// database (creating the file if absent), runs migrations and serves HTTP
// until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	catalog, err := services.NewTMDBService(services.TMDBOpts{
		BaseURL:        config.Catalog.BaseURL,
		AccessToken:    config.Catalog.AccessToken,
		Timeout:        time.Duration(config.Catalog.TimeoutSeconds) * time.Second,
		RequestsPerSec: config.Catalog.RequestsPerSec,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	views, err := server.NewViews()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	repo := repositories.NewMovieRepository(db)
	handler := server.NewMovieHandler(repo, catalog, views, r.logger, config.Catalog.ImageBaseURL)

	router := server.NewBasicRouter()
	router.Use(server.Recovery(r.logger), server.Logging(r.logger))
	router.Handler(handler)

	httpServer := &http.Server{
		Addr:         config.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("serving movie collection", "addr", httpServer.Addr, "database", config.Database.Path)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	return nil
}
