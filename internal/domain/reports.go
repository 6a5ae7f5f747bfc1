package domain

import "github.com/shopspring/decimal"

// KPI holds the accuracy metrics of one time bucket.
// The discrepancy is the magnitude of the summed signed differences, so
// opposite errors on different dates offset each other. The row fields sum
// per-row magnitudes instead.
// Percentages and accuracies are nil when undefined (no Statistics total to divide by).
type KPI struct {
	Rows                  int             `json:"rows"`
	RNDiscrepancyAbs      float64         `json:"rn_discrepancy_abs"`
	RevenueDiscrepancyAbs decimal.Decimal `json:"revenue_discrepancy_abs"`
	RNRowDiscrepancy      float64         `json:"rn_row_discrepancy"`
	RevenueRowDiscrepancy decimal.Decimal `json:"revenue_row_discrepancy"`
	RNDiscrepancyPct      *float64        `json:"rn_discrepancy_pct"`
	RevenueDiscrepancyPct *float64        `json:"revenue_discrepancy_pct"`
	RNAccuracy            *float64        `json:"rn_accuracy"`
	RevenueAccuracy       *float64        `json:"revenue_accuracy"`
	NetRNDifference       float64         `json:"net_rn_difference"`
	NetRevenueDifference  decimal.Decimal `json:"net_revenue_difference"`
	RNTotalB              float64         `json:"rn_total_b"`
	RevenueTotalB         decimal.Decimal `json:"revenue_total_b"`
}

// KPISummary splits the metrics at the cutoff date.
type KPISummary struct {
	Past   KPI `json:"past"`
	Future KPI `json:"future"`
}

// WarningCode classifies an advisory warning.
type WarningCode string

const (
	WarningRNOnly      WarningCode = "rn_only"
	WarningRevenueOnly WarningCode = "revenue_only"
)

// Warning flags a suspicious discrepancy pattern. It never alters the data.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Dates   []string    `json:"dates"`
}

// Table is the projected view of the reconciled records.
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Summary provides row counts of the reconciliation process.
type Summary struct {
	DailyTotalRows int  `json:"daily_total_rows"`
	StatisticRows  int  `json:"statistic_rows"`
	MatchedRows    int  `json:"matched_rows"`
	DiscrepantRows int  `json:"discrepant_rows"`
	Empty          bool `json:"empty"`
}

// ReconciliationReport is the top-level structure for the final output.
type ReconciliationReport struct {
	ID       string             `json:"id"`
	Property string             `json:"property,omitempty"`
	Cutoff   string             `json:"cutoff"`
	Summary  Summary            `json:"summary"`
	KPIs     KPISummary         `json:"kpis"`
	Warnings []Warning          `json:"warnings"`
	Table    Table              `json:"table"`
	Records  []ReconciledRecord `json:"records"`
	Message  string             `json:"message,omitempty"`
}
