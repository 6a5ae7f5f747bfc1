package gateway

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"hotel-reconciliation/internal/domain"
)

var (
	errBlankDate = errors.New("date is empty")
	errNonFinite = errors.New("value is not a finite number")
)

// nullTokens are cell values that spreadsheet and CSV exports use for a
// missing value. They are read as blank.
var nullTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"<NA>":     {},
	"N/A":      {},
	"n/a":      {},
	"NA":       {},
	"NULL":     {},
	"null":     {},
	"NaN":      {},
	"nan":      {},
	"-NaN":     {},
	"-nan":     {},
	"None":     {},
}

func isNull(value string) bool {
	_, ok := nullTokens[value]
	return ok
}

// dateLayouts are tried in order. Time of day, when present, is dropped.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02.01.2006",
	"01/02/2006",
	"2006/01/02",
}

// header maps trimmed column names to their first position.
type header map[string]int

// newHeader trims every column name. Matching stays case-sensitive.
func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	return h
}

// require returns the positions of the named columns in order.
func (h header) require(source domain.Source, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		pos, ok := h[name]
		if !ok {
			return nil, &domain.SchemaError{Source: source, Column: name}
		}
		idx[i] = pos
	}
	return idx, nil
}

// cells picks the values at idx from record, trimmed. Short rows yield blanks.
func cells(record []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, pos := range idx {
		if pos < len(record) {
			out[i] = strings.TrimSpace(record[pos])
		}
	}
	return out
}

func allBlank(values []string) bool {
	for _, v := range values {
		if !isNull(v) {
			return false
		}
	}
	return true
}

// dateParser coerces a date cell. Spreadsheet cells may hold Excel serial numbers.
type dateParser struct {
	serial   bool
	date1904 bool
}

func (p dateParser) parse(value string) (time.Time, error) {
	if isNull(value) {
		return time.Time{}, errBlankDate
	}
	if p.serial {
		if serial, err := strconv.ParseFloat(value, 64); err == nil {
			t, err := excelize.ExcelDateToTime(serial, p.date1904)
			if err != nil {
				return time.Time{}, err
			}
			return domain.DateOf(t), nil
		}
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return domain.DateOf(t), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseFloat reads a count. A null cell counts as zero; infinities are rejected.
func parseFloat(value string) (float64, error) {
	if isNull(value) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNonFinite
	}
	return f, nil
}

// parseDecimal reads an amount. A null cell counts as zero.
func parseDecimal(value string) (decimal.Decimal, error) {
	if isNull(value) {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}
