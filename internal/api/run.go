package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/mdstruct/internal/config"
	"github.com/dgallion1/mdstruct/internal/pipeline"
)

// ListenAndServe starts the job pipeline and the HTTP server, and shuts both
// down gracefully once ctx is canceled.
func ListenAndServe(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	orch := pipeline.NewOrchestrator(cfg, log)
	orch.Start(ctx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      NewServer(orch, log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveFailed := make(chan struct{})
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case <-ctx.Done():
		case <-serveFailed:
			return
		}
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}
		// Stop the pipeline only after handlers can no longer submit jobs.
		orch.Stop()
	}()

	log.Info("starting mdstruct", "port", cfg.Port, "workers", cfg.WorkerCount, "auth", cfg.APIKey != "")
	if err := serve(httpServer); err != nil {
		close(serveFailed)
		<-shutdownDone
		orch.Stop()
		return err
	}
	<-shutdownDone
	return nil
}

// serve runs srv until it is shut down. A clean shutdown returns nil.
func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	return nil
}
