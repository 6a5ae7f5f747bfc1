package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"hotel-reconciliation/internal/config"
	"hotel-reconciliation/internal/domain"
	"hotel-reconciliation/internal/gateway"
	"hotel-reconciliation/internal/logging"
	"hotel-reconciliation/internal/usecase"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("reconciler", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Define command-line flags
	dailyFile := fs.String("daily", "", "Path to the Daily Totals export, semicolon-delimited (required)")
	statsFile := fs.String("stats", "", "Path to the Statistics export, xlsx (required)")
	cutoffStr := fs.String("cutoff", "", "Cutoff date separating past from future (YYYY-MM-DD), defaults to today")
	columnsStr := fs.String("columns", "", "Comma-separated columns of the detailed table")
	showAll := fs.Bool("all", false, "Show every matched date, not only discrepancies")
	format := fs.String("format", "json", "Output format: json, csv or xlsx")
	outPath := fs.String("out", "", "Output file, defaults to stdout (required for xlsx)")
	configPath := fs.String("config", "", "Path to a YAML config file")
	logLevel := fs.String("log-level", "", "Log level override: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Validate required flags
	if *dailyFile == "" || *statsFile == "" {
		fs.Usage()
		return fmt.Errorf("both -daily and -stats are required")
	}
	if *format != "json" && *format != "csv" && *format != "xlsx" {
		return fmt.Errorf("unknown format %q", *format)
	}
	if *format == "xlsx" && *outPath == "" {
		return fmt.Errorf("-out is required for xlsx output")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger := logging.NewLogger(stderr, cfg.Logging)

	view, err := viewOptions(cfg.Report, *columnsStr, *showAll)
	if err != nil {
		return err
	}

	var cutoff time.Time
	if *cutoffStr != "" {
		cutoff, err = time.Parse(time.DateOnly, *cutoffStr)
		if err != nil {
			return fmt.Errorf("error parsing cutoff date: %w", err)
		}
	}

	daily, err := os.Open(*dailyFile)
	if err != nil {
		return fmt.Errorf("failed to open daily totals file %s: %w", *dailyFile, err)
	}
	defer daily.Close()

	stats, err := os.Open(*statsFile)
	if err != nil {
		return fmt.Errorf("failed to open statistics file %s: %w", *statsFile, err)
	}
	defer stats.Close()

	// Wire the repository into the usecase
	repo := gateway.NewFileReportRepository(logger)
	reconciliationUseCase := usecase.NewReconciliationUseCase(repo, usecase.WithLogger(logger))

	report, err := reconciliationUseCase.Reconcile(context.Background(), usecase.Input{
		DailyTotals:     daily,
		Statistics:      stats,
		DailyTotalsName: *dailyFile,
		Cutoff:          cutoff,
		View:            view,
	})
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	if report.Summary.Empty {
		logger.Warn(report.Message)
	}
	for _, w := range report.Warnings {
		logger.Warn(w.Message, slog.String("code", string(w.Code)), slog.Int("dates", len(w.Dates)))
	}

	// Present the output
	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "csv":
		return gateway.WriteCSV(out, report.Table)
	case "xlsx":
		return gateway.WriteXLSX(out, report)
	default:
		return gateway.WriteJSON(out, report)
	}
}

// viewOptions applies the flag overrides on top of the configured view.
func viewOptions(rc config.ReportConfig, columns string, all bool) (usecase.ViewOptions, error) {
	cols, err := rc.ParsedColumns()
	if err != nil {
		return usecase.ViewOptions{}, err
	}
	if override, err := domain.ParseColumns(columns); err != nil {
		return usecase.ViewOptions{}, err
	} else if override != nil {
		cols = override
	}
	return usecase.ViewOptions{
		Columns:           cols,
		DiscrepanciesOnly: rc.DiscrepanciesOnly && !all,
	}, nil
}
