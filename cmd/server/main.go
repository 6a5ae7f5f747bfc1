package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hotel-reconciliation/internal/config"
	"hotel-reconciliation/internal/gateway"
	"hotel-reconciliation/internal/logging"
	"hotel-reconciliation/internal/observability"
	transport "hotel-reconciliation/internal/transport/http"
	"hotel-reconciliation/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(stdout, cfg.Logging)

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("server listening", slog.String("addr", cfg.Server.Addr))
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// loadConfig reads the config file named by -config and applies -addr.
func loadConfig(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	addr := fs.String("addr", "", "Listen address override, e.g. :8080")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	return cfg, nil
}

// newServer wires repository, usecase, metrics and handler into an http.Server.
func newServer(cfg *config.Config, logger *slog.Logger) (*http.Server, error) {
	cols, err := cfg.Report.ParsedColumns()
	if err != nil {
		return nil, fmt.Errorf("invalid report columns: %w", err)
	}

	repo := gateway.NewFileReportRepository(logger)
	uc := usecase.NewReconciliationUseCase(repo, usecase.WithLogger(logger))
	metrics := observability.NewMetrics()
	handler := transport.NewReconciliationHandler(uc, metrics, logger, cfg.Server.MaxUploadBytes, usecase.ViewOptions{
		Columns:           cols,
		DiscrepanciesOnly: cfg.Report.DiscrepanciesOnly,
	})

	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      transport.NewRouter(handler, metrics, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
