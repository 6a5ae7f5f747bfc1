package gateway

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-reconciliation/internal/domain"
)

func TestFileReportRepository_GetDailyTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []domain.DailyTotal
		wantErr  bool
	}{
		{
			name: "valid daily totals",
			lines: []string{
				"arrivalDate;rn;revNet;adults",
				"2024-01-01;10;1000.00;20",
				"2024-01-02;12;1250.50;22",
			},
			expected: []domain.DailyTotal{
				{ArrivalDate: mustParseDate("2024-01-01"), RoomNights: 10, RevenueNet: decimal.RequireFromString("1000.00")},
				{ArrivalDate: mustParseDate("2024-01-02"), RoomNights: 12, RevenueNet: decimal.RequireFromString("1250.50")},
			},
		},
		{
			name: "column names with surrounding whitespace",
			lines: []string{
				" arrivalDate ; rn ;revNet  ",
				"2024-01-01;5;500",
			},
			expected: []domain.DailyTotal{
				{ArrivalDate: mustParseDate("2024-01-01"), RoomNights: 5, RevenueNet: decimal.RequireFromString("500")},
			},
		},
		{
			name: "utf-8 byte order mark before first header",
			lines: []string{
				"\ufeffarrivalDate;rn;revNet",
				"2024-01-01;5;500",
			},
			expected: []domain.DailyTotal{
				{ArrivalDate: mustParseDate("2024-01-01"), RoomNights: 5, RevenueNet: decimal.RequireFromString("500")},
			},
		},
		{
			name: "blank numbers are zero and blank rows are skipped",
			lines: []string{
				"arrivalDate;rn;revNet",
				"2024-01-01;;",
				";;",
				"2024-01-03;3;",
			},
			expected: []domain.DailyTotal{
				{ArrivalDate: mustParseDate("2024-01-01"), RoomNights: 0, RevenueNet: decimal.Zero},
				{ArrivalDate: mustParseDate("2024-01-03"), RoomNights: 3, RevenueNet: decimal.Zero},
			},
		},
		{
			name: "time of day is dropped",
			lines: []string{
				"arrivalDate;rn;revNet",
				"2024-01-01 00:00:00;1;10",
				"02.01.2024;2;20",
			},
			expected: []domain.DailyTotal{
				{ArrivalDate: mustParseDate("2024-01-01"), RoomNights: 1, RevenueNet: decimal.RequireFromString("10")},
				{ArrivalDate: mustParseDate("2024-01-02"), RoomNights: 2, RevenueNet: decimal.RequireFromString("20")},
			},
		},
		{
			name: "null tokens are zero",
			lines: []string{
				"arrivalDate;rn;revNet",
				"2024-01-01;NA;N/A",
				"2024-01-02;NaN;null",
				"2024-01-03;#N/A;NULL",
				"NA;NA;NA",
			},
			expected: []domain.DailyTotal{
				{ArrivalDate: mustParseDate("2024-01-01"), RoomNights: 0, RevenueNet: decimal.Zero},
				{ArrivalDate: mustParseDate("2024-01-02"), RoomNights: 0, RevenueNet: decimal.Zero},
				{ArrivalDate: mustParseDate("2024-01-03"), RoomNights: 0, RevenueNet: decimal.Zero},
			},
		},
		{
			name:     "header only",
			lines:    []string{"arrivalDate;rn;revNet"},
			expected: nil,
		},
		{
			name: "invalid date",
			lines: []string{
				"arrivalDate;rn;revNet",
				"not-a-date;10;1000",
			},
			wantErr: true,
		},
		{
			name: "invalid revenue",
			lines: []string{
				"arrivalDate;rn;revNet",
				"2024-01-01;10;1.000,50",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFileReportRepository(nil)
			got, err := repo.GetDailyTotals(context.Background(), strings.NewReader(strings.Join(tt.lines, "\n")))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assertDailyTotals(t, tt.expected, got)
		})
	}
}

func TestFileReportRepository_GetDailyTotals_Errors(t *testing.T) {
	repo := NewFileReportRepository(nil)
	ctx := context.Background()

	t.Run("empty input", func(t *testing.T) {
		_, err := repo.GetDailyTotals(ctx, strings.NewReader(""))
		var schemaErr *domain.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, domain.SourceDailyTotals, schemaErr.Source)
		assert.True(t, domain.IsInputError(err))
	})

	t.Run("non-finite numbers", func(t *testing.T) {
		for _, value := range []string{"Inf", "+Inf", "-infinity", "NAN"} {
			_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivalDate;rn;revNet\n2024-01-01;"+value+";1"))
			var parseErr *domain.ParseError
			require.True(t, errors.As(err, &parseErr), value)
			assert.Equal(t, "rn", parseErr.Column)
			assert.ErrorIs(t, err, errNonFinite)
		}

		_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivalDate;rn;revNet\n2024-01-01;1;Inf"))
		var parseErr *domain.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "revNet", parseErr.Column)
	})

	t.Run("null date with data", func(t *testing.T) {
		_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivalDate;rn;revNet\nN/A;4;400"))
		assert.ErrorIs(t, err, errBlankDate)
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivalDate;rn\n2024-01-01;1"))
		var schemaErr *domain.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, domain.SourceDailyTotals, schemaErr.Source)
		assert.Equal(t, "revNet", schemaErr.Column)
	})

	t.Run("column names are case-sensitive", func(t *testing.T) {
		_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivaldate;rn;revNet\n2024-01-01;1;1"))
		var schemaErr *domain.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "arrivalDate", schemaErr.Column)
	})

	t.Run("comma is not the delimiter", func(t *testing.T) {
		_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivalDate,rn,revNet\n2024-01-01,1,1"))
		var schemaErr *domain.SchemaError
		assert.True(t, errors.As(err, &schemaErr))
	})

	t.Run("parse error carries position", func(t *testing.T) {
		_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivalDate;rn;revNet\n2024-01-01;1;1\n2024-01-02;x;1"))
		var parseErr *domain.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 3, parseErr.Row)
		assert.Equal(t, "rn", parseErr.Column)
		assert.Equal(t, "x", parseErr.Value)
	})

	t.Run("blank date with data", func(t *testing.T) {
		_, err := repo.GetDailyTotals(ctx, strings.NewReader("arrivalDate;rn;revNet\n;4;400"))
		var parseErr *domain.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.ErrorIs(t, err, errBlankDate)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.GetDailyTotals(cctx, strings.NewReader("arrivalDate;rn;revNet\n2024-01-01;1;1"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// Helper functions

func mustParseDate(dateStr string) time.Time {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDailyTotals(t *testing.T, want, got []domain.DailyTotal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].ArrivalDate.Equal(got[i].ArrivalDate), "row %d date: want %s, got %s", i, want[i].ArrivalDate, got[i].ArrivalDate)
		assert.Equal(t, want[i].RoomNights, got[i].RoomNights, "row %d rn", i)
		assert.True(t, want[i].RevenueNet.Equal(got[i].RevenueNet), "row %d revNet: want %s, got %s", i, want[i].RevenueNet, got[i].RevenueNet)
	}
}
