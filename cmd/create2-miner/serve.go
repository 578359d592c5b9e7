package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanityforge/create2-miner/internal/api"
	minerpkg "github.com/vanityforge/create2-miner/pkg/miner"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP derivation and mining service",
		Run:   runServe,
	}

	cmd.Flags().IntVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP listen port")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Worker goroutines per mining request")
	cmd.Flags().Int64Var(&cfg.MaxAttemptCap, "max-attempt-cap", cfg.MaxAttemptCap, "System-wide ceiling on attempts per search")
	cmd.Flags().IntVar(&cfg.MineTimeout, "mine-timeout", cfg.MineTimeout, "Request-level mining deadline in seconds")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) {
	setupLogging()

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	m := minerpkg.NewMiner(minerpkg.Options{
		Workers:   cfg.Workers,
		BatchSize: cfg.BatchSize,
	}, logger)

	srv := api.NewServer(cfg, m, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Forced shutdown: %v", err)
	}
	logger.Println("Server exited gracefully")
}
