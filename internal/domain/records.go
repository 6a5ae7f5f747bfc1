package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTotal is one row of the Daily Totals export (semicolon-delimited text).
type DailyTotal struct {
	ArrivalDate time.Time       `json:"arrivalDate"`
	RoomNights  float64         `json:"rn"`
	RevenueNet  decimal.Decimal `json:"revNet"`
}

// Statistic is one row of the Statistics export (spreadsheet).
type Statistic struct {
	OccupancyDate time.Time       `json:"occupancyDate"`
	RoomsSold     float64         `json:"roomsSold"`
	RoomRevenue   decimal.Decimal `json:"roomRevenue"`
}

// ReconciledRecord is a Daily Totals row joined with the Statistics row of the same date.
// Values suffixed A come from the Daily Totals export, B from the Statistics export.
type ReconciledRecord struct {
	Date              time.Time       `json:"Date"`
	RNA               float64         `json:"RN_A"`
	RevenueA          decimal.Decimal `json:"Revenue_A"`
	RNB               float64         `json:"RN_B"`
	RevenueB          decimal.Decimal `json:"Revenue_B"`
	RNDifference      float64         `json:"RN_Difference"`
	RevenueDifference decimal.Decimal `json:"Revenue_Difference"`
}

// HasDiscrepancy reports whether either difference is non-zero.
func (r ReconciledRecord) HasDiscrepancy() bool {
	return r.RNDifference != 0 || !r.RevenueDifference.IsZero()
}

// DateOf truncates t to midnight of its calendar day, expressed in UTC.
// The calendar day is taken in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
