package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"hotel-reconciliation/internal/domain"
)

// revenuePlaces is the precision of Revenue_Difference.
const revenuePlaces = 2

// Reconcile inner-joins the Daily Totals rows with the Statistics rows on date.
// Dates present in only one export are dropped. Left row order is preserved and
// a date repeated on both sides yields every pairing, like a relational join.
// The result is never nil; no overlap gives an empty slice.
func Reconcile(daily []domain.DailyTotal, stats []domain.Statistic) []domain.ReconciledRecord {
	byDate := make(map[time.Time][]domain.Statistic, len(stats))
	for _, s := range stats {
		key := domain.DateOf(s.OccupancyDate)
		byDate[key] = append(byDate[key], s)
	}

	records := make([]domain.ReconciledRecord, 0, len(daily))
	for _, d := range daily {
		key := domain.DateOf(d.ArrivalDate)
		for _, s := range byDate[key] {
			records = append(records, merge(key, d, s))
		}
	}
	return records
}

// merge builds the canonical record for a matched pair. Null cells arrive from
// the gateway as zero values, so the zero-fill policy holds by construction.
func merge(date time.Time, d domain.DailyTotal, s domain.Statistic) domain.ReconciledRecord {
	return domain.ReconciledRecord{
		Date:              date,
		RNA:               d.RoomNights,
		RevenueA:          d.RevenueNet,
		RNB:               s.RoomsSold,
		RevenueB:          s.RoomRevenue,
		RNDifference:      d.RoomNights - s.RoomsSold,
		RevenueDifference: revenueDifference(d.RevenueNet, s.RoomRevenue),
	}
}

// revenueDifference subtracts exactly, then rounds half away from zero.
func revenueDifference(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Round(revenuePlaces)
}
