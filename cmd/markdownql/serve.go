package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/markdownql/internal/api"
	"github.com/dgallion1/markdownql/internal/metrics"
	"github.com/dgallion1/markdownql/internal/pipeline"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}
	cmd.Flags().StringVar(&a.cfg.Port, "port", a.cfg.Port, "HTTP listen port")
	return cmd
}

func (a *app) serve() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: a.cfg.Level(slog.LevelInfo),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	runs := pipeline.NewRunStore(a.cfg.RunTTL)
	runs.StartCleanup(ctx, 5*time.Minute)

	// HTTP clients may only read documents beneath the served directory.
	srv := api.NewServer(a.runner(log, m, true), runs, m, a.dir, log, a.cfg)

	httpServer := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown error", "error", err)
		}
	}()

	log.Info("starting markdownql", "port", a.cfg.Port, "traversal", a.cfg.Traversal, "auth", a.cfg.APIKey != "")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		return err
	}
	return nil
}
