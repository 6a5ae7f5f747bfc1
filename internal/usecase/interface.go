package usecase

import (
	"context"
	"io"

	"hotel-reconciliation/internal/domain"
)

// ReportRepository defines the interface for reading the two source exports.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go ReportRepository
type ReportRepository interface {
	GetDailyTotals(ctx context.Context, r io.Reader) ([]domain.DailyTotal, error)
	GetStatistics(ctx context.Context, r io.Reader) ([]domain.Statistic, error)
}
