package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"hotel-reconciliation/internal/domain"
)

// DailyTotalsDelimiter separates fields in the Daily Totals export.
const DailyTotalsDelimiter = ';'

// Daily Totals column names, matched after trimming.
const (
	colArrivalDate = "arrivalDate"
	colRN          = "rn"
	colRevNet      = "revNet"
)

// GetDailyTotals reads and parses the semicolon-delimited Daily Totals export.
func (r *FileReportRepository) GetDailyTotals(ctx context.Context, in io.Reader) ([]domain.DailyTotal, error) {
	reader := csv.NewReader(in)
	reader.Comma = DailyTotalsDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.SchemaError{Source: domain.SourceDailyTotals, Column: colArrivalDate}
	}
	if err != nil {
		return nil, &domain.FormatError{Source: domain.SourceDailyTotals, Err: fmt.Errorf("failed to read header: %w", err)}
	}
	idx, err := newHeader(head).require(domain.SourceDailyTotals, colArrivalDate, colRN, colRevNet)
	if err != nil {
		return nil, err
	}

	dates := dateParser{}
	var totals []domain.DailyTotal
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.FormatError{Source: domain.SourceDailyTotals, Err: fmt.Errorf("error reading record %d: %w", row, err)}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v := cells(record, idx)
		if allBlank(v) {
			continue
		}

		date, err := dates.parse(v[0])
		if err != nil {
			return nil, parseErr(domain.SourceDailyTotals, row, colArrivalDate, v[0], err)
		}
		rn, err := parseFloat(v[1])
		if err != nil {
			return nil, parseErr(domain.SourceDailyTotals, row, colRN, v[1], err)
		}
		revenue, err := parseDecimal(v[2])
		if err != nil {
			return nil, parseErr(domain.SourceDailyTotals, row, colRevNet, v[2], err)
		}

		totals = append(totals, domain.DailyTotal{
			ArrivalDate: date,
			RoomNights:  rn,
			RevenueNet:  revenue,
		})
	}

	r.logger.DebugContext(ctx, "daily totals parsed", "rows", len(totals))
	return totals, nil
}

func parseErr(source domain.Source, row int, column, value string, err error) error {
	return &domain.ParseError{Source: source, Row: row, Column: column, Value: value, Err: err}
}
