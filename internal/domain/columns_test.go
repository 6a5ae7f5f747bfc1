package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumns(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		want    []Column
		wantErr string
	}{
		{name: "empty", list: "", want: nil},
		{name: "blank", list: "  ", want: nil},
		{name: "trimmed names", list: "Date, RN_A ,Revenue_Difference", want: []Column{ColumnDate, ColumnRNA, ColumnRevenueDifference}},
		{name: "case sensitive", list: "date", wantErr: `unknown column "date"`},
		{name: "unknown", list: "Date,Profit", wantErr: `unknown column "Profit"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColumns(tt.list)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				var schemaErr *SchemaError
				assert.True(t, errors.As(err, &schemaErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconciledRecord_Format(t *testing.T) {
	r := ReconciledRecord{
		Date:              time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RNA:               10.5,
		RevenueA:          decimal.RequireFromString("1000"),
		RNB:               8,
		RevenueB:          decimal.RequireFromString("900.005"),
		RNDifference:      2.5,
		RevenueDifference: decimal.RequireFromString("100.00"),
	}

	want := map[Column]string{
		ColumnDate:              "2024-01-01",
		ColumnRNA:               "10.5",
		ColumnRevenueA:          "1000.00",
		ColumnRNB:               "8",
		ColumnRevenueB:          "900.01",
		ColumnRNDifference:      "2",
		ColumnRevenueDifference: "100.00",
	}
	for col, s := range want {
		assert.Equal(t, s, r.Format(col), col)
	}
	assert.True(t, r.HasDiscrepancy())
	assert.False(t, ReconciledRecord{}.HasDiscrepancy())
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	got := DateOf(time.Date(2024, 3, 5, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(&SchemaError{Source: SourceStatistics, Column: "roomsSold"}))
	assert.True(t, IsInputError(&ParseError{Source: SourceDailyTotals, Row: 3, Column: "rn", Value: "x", Err: errors.New("invalid")}))
	assert.True(t, IsInputError(fmt.Errorf("could not get statistics: %w", &FormatError{Source: SourceStatistics, Err: errors.New("zip: not a valid zip file")})))
	assert.False(t, IsInputError(errors.New("io failure")))
	assert.False(t, IsInputError(nil))
}
