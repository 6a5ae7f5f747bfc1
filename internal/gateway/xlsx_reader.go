package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"hotel-reconciliation/internal/domain"
)

// Statistics column names, matched after trimming.
const (
	colOccupancyDate = "occupancyDate"
	colRoomsSold     = "roomsSold"
	colRoomRevenue   = "roomRevenue"
)

// GetStatistics reads the first worksheet of the Statistics spreadsheet export.
func (r *FileReportRepository) GetStatistics(ctx context.Context, in io.Reader) ([]domain.Statistic, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, &domain.FormatError{Source: domain.SourceStatistics, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.FormatError{Source: domain.SourceStatistics, Err: errors.New("workbook has no sheets")}
	}
	sheet := sheets[0]

	// Raw values keep dates as serial numbers instead of locale-formatted text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &domain.SchemaError{Source: domain.SourceStatistics, Column: colOccupancyDate}
	}

	idx, err := newHeader(rows[0]).require(domain.SourceStatistics, colOccupancyDate, colRoomsSold, colRoomRevenue)
	if err != nil {
		return nil, err
	}

	dates := dateParser{serial: true, date1904: uses1904(f)}
	var stats []domain.Statistic
	for i, record := range rows[1:] {
		row := i + 2
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v := cells(record, idx)
		if allBlank(v) {
			continue
		}

		date, err := dates.parse(v[0])
		if err != nil {
			return nil, parseErr(domain.SourceStatistics, row, colOccupancyDate, v[0], err)
		}
		sold, err := parseFloat(v[1])
		if err != nil {
			return nil, parseErr(domain.SourceStatistics, row, colRoomsSold, v[1], err)
		}
		revenue, err := parseDecimal(v[2])
		if err != nil {
			return nil, parseErr(domain.SourceStatistics, row, colRoomRevenue, v[2], err)
		}

		stats = append(stats, domain.Statistic{
			OccupancyDate: date,
			RoomsSold:     sold,
			RoomRevenue:   revenue,
		})
	}

	r.logger.DebugContext(ctx, "statistics parsed",
		slog.String("sheet", sheet),
		slog.Int("rows", len(stats)),
	)
	return stats, nil
}

// uses1904 reports whether the workbook counts serial dates from 1904.
func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}
