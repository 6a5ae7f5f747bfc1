package usecase

import (
	"time"

	"hotel-reconciliation/internal/domain"
)

const (
	rnOnlyMessage      = "Room Night discrepancies without corresponding Revenue discrepancies, the export configuration may be off"
	revenueOnlyMessage = "Revenue discrepancies without corresponding Room Night discrepancies, the export configuration may be off"
)

// ViewOptions selects what the detailed table shows.
type ViewOptions struct {
	Columns           []domain.Column
	DiscrepanciesOnly bool
}

// DefaultViewOptions mirrors the defaults of the interactive report.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Columns:           domain.DefaultColumns,
		DiscrepanciesOnly: true,
	}
}

// Project renders records into a table with the selected columns.
// The discrepancy filter looks at both differences whether or not they are displayed.
func Project(records []domain.ReconciledRecord, opts ViewOptions) domain.Table {
	cols := opts.Columns
	if len(cols) == 0 {
		cols = domain.DefaultColumns
	}
	table := domain.Table{
		Columns: cols,
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		if opts.DiscrepanciesOnly && !r.HasDiscrepancy() {
			continue
		}
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r.Format(c)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// Classify flags rows where only one of the two differences is non-zero.
// Warnings are advisory and leave the records untouched.
func Classify(records []domain.ReconciledRecord) []domain.Warning {
	var rnOnly, revenueOnly []string
	for _, r := range records {
		rnDiff := r.RNDifference != 0
		revDiff := !r.RevenueDifference.IsZero()
		switch {
		case rnDiff && !revDiff:
			rnOnly = append(rnOnly, r.Date.Format(time.DateOnly))
		case revDiff && !rnDiff:
			revenueOnly = append(revenueOnly, r.Date.Format(time.DateOnly))
		}
	}

	warnings := make([]domain.Warning, 0, 2)
	if len(rnOnly) > 0 {
		warnings = append(warnings, domain.Warning{Code: domain.WarningRNOnly, Message: rnOnlyMessage, Dates: rnOnly})
	}
	if len(revenueOnly) > 0 {
		warnings = append(warnings, domain.Warning{Code: domain.WarningRevenueOnly, Message: revenueOnlyMessage, Dates: revenueOnly})
	}
	return warnings
}
