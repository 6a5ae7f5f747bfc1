package usecase

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"hotel-reconciliation/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Partition splits records at cutoff (normalized to midnight): rows dated
// strictly before it are past, the rest are future.
func Partition(records []domain.ReconciledRecord, cutoff time.Time) (past, future []domain.ReconciledRecord) {
	cutoff = domain.DateOf(cutoff)
	for _, r := range records {
		if r.Date.Before(cutoff) {
			past = append(past, r)
		} else {
			future = append(future, r)
		}
	}
	return past, future
}

// Aggregate computes the past and future KPIs around cutoff.
func Aggregate(records []domain.ReconciledRecord, cutoff time.Time) domain.KPISummary {
	past, future := Partition(records, cutoff)
	return domain.KPISummary{
		Past:   computeKPI(past),
		Future: computeKPI(future),
	}
}

// computeKPI relates the magnitude of the summed signed differences to the
// Statistics totals of the same rows. Per-row magnitudes are kept separately.
func computeKPI(records []domain.ReconciledRecord) domain.KPI {
	kpi := domain.KPI{
		Rows:                  len(records),
		NetRevenueDifference:  decimal.Zero,
		RevenueRowDiscrepancy: decimal.Zero,
		RevenueTotalB:         decimal.Zero,
	}
	for _, r := range records {
		kpi.NetRNDifference += r.RNDifference
		kpi.RNRowDiscrepancy += math.Abs(r.RNDifference)
		kpi.RNTotalB += r.RNB
		kpi.NetRevenueDifference = kpi.NetRevenueDifference.Add(r.RevenueDifference)
		kpi.RevenueRowDiscrepancy = kpi.RevenueRowDiscrepancy.Add(r.RevenueDifference.Abs())
		kpi.RevenueTotalB = kpi.RevenueTotalB.Add(r.RevenueB)
	}
	kpi.RNDiscrepancyAbs = math.Abs(kpi.NetRNDifference)
	kpi.RevenueDiscrepancyAbs = kpi.NetRevenueDifference.Abs()

	kpi.RNDiscrepancyPct = percentage(
		decimal.NewFromFloat(kpi.RNDiscrepancyAbs),
		decimal.NewFromFloat(kpi.RNTotalB),
	)
	kpi.RevenueDiscrepancyPct = percentage(kpi.RevenueDiscrepancyAbs, kpi.RevenueTotalB)
	kpi.RNAccuracy = accuracy(kpi.RNDiscrepancyPct)
	kpi.RevenueAccuracy = accuracy(kpi.RevenueDiscrepancyPct)
	return kpi
}

// percentage returns abs/total*100. A zero total is only defined when there
// is nothing to report (abs is zero too), in which case the discrepancy is 0%.
func percentage(abs, total decimal.Decimal) *float64 {
	if total.IsZero() {
		if abs.IsZero() {
			return ptr(0)
		}
		return nil
	}
	return ptr(abs.Div(total).Mul(hundred).InexactFloat64())
}

func accuracy(pct *float64) *float64 {
	if pct == nil {
		return nil
	}
	return ptr(100 - *pct)
}

func ptr(f float64) *float64 {
	return &f
}
