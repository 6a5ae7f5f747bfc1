package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hotel-reconciliation/internal/domain"
)

// Input carries one pair of uploaded exports and the caller's view settings.
type Input struct {
	DailyTotals     io.Reader
	Statistics      io.Reader
	DailyTotalsName string    // used only to derive the property label
	Cutoff          time.Time // zero means today
	View            ViewOptions
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo   ReportRepository
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Option configures a ReconciliationUseCase.
type Option func(*ReconciliationUseCase)

// WithClock replaces the wall clock used to derive the default cutoff.
func WithClock(now func() time.Time) Option {
	return func(uc *ReconciliationUseCase) { uc.now = now }
}

// WithIDGenerator replaces the report ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(uc *ReconciliationUseCase) { uc.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(uc *ReconciliationUseCase) { uc.logger = logger }
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo ReportRepository, opts ...Option) *ReconciliationUseCase {
	uc := &ReconciliationUseCase{
		repo:   repo,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.logger = uc.logger.With(slog.String("component", "reconciliation"))
	return uc
}

// Reconcile reads both exports, joins them and builds the report.
// A pair of exports without common dates is a valid outcome: the report is
// returned with Summary.Empty set and no error.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, in Input) (*domain.ReconciliationReport, error) {
	// Step 1: Data Ingestion
	daily, err := uc.repo.GetDailyTotals(ctx, in.DailyTotals)
	if err != nil {
		return nil, fmt.Errorf("could not get daily totals: %w", err)
	}

	stats, err := uc.repo.GetStatistics(ctx, in.Statistics)
	if err != nil {
		return nil, fmt.Errorf("could not get statistics: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Join and difference
	records := Reconcile(daily, stats)

	cutoff := in.Cutoff
	if cutoff.IsZero() {
		cutoff = uc.now()
	}
	cutoff = domain.DateOf(cutoff)

	report := &domain.ReconciliationReport{
		ID:       uc.newID(),
		Property: ParsePropertyName(in.DailyTotalsName),
		Cutoff:   cutoff.Format(time.DateOnly),
		Summary: domain.Summary{
			DailyTotalRows: len(daily),
			StatisticRows:  len(stats),
			MatchedRows:    len(records),
		},
		Records: records,
	}

	// Step 3: KPIs, warnings and the detailed table
	report.KPIs = Aggregate(records, cutoff)
	report.Warnings = Classify(records)
	report.Table = Project(records, in.View)
	for _, r := range records {
		if r.HasDiscrepancy() {
			report.Summary.DiscrepantRows++
		}
	}

	if len(records) == 0 {
		report.Summary.Empty = true
		report.Message = domain.ErrNoOverlap.Error()
		uc.logger.WarnContext(ctx, "no overlapping dates",
			slog.Int("daily_total_rows", len(daily)),
			slog.Int("statistic_rows", len(stats)),
		)
	}

	uc.logger.InfoContext(ctx, "reconciliation completed",
		slog.String("report_id", report.ID),
		slog.String("cutoff", report.Cutoff),
		slog.Int("matched_rows", report.Summary.MatchedRows),
		slog.Int("discrepant_rows", report.Summary.DiscrepantRows),
		slog.Int("warnings", len(report.Warnings)),
	)

	return report, nil
}
