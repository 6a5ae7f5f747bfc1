package domain

import (
	"strconv"
	"strings"
	"time"
)

// Column names the canonical reconciled columns.
type Column string

const (
	ColumnDate              Column = "Date"
	ColumnRNA               Column = "RN_A"
	ColumnRevenueA          Column = "Revenue_A"
	ColumnRNB               Column = "RN_B"
	ColumnRevenueB          Column = "Revenue_B"
	ColumnRNDifference      Column = "RN_Difference"
	ColumnRevenueDifference Column = "Revenue_Difference"
)

// AllColumns lists every reconciled column in output order.
var AllColumns = []Column{
	ColumnDate,
	ColumnRNA,
	ColumnRevenueA,
	ColumnRNB,
	ColumnRevenueB,
	ColumnRNDifference,
	ColumnRevenueDifference,
}

// DefaultColumns is the column set shown when the caller selects none.
var DefaultColumns = []Column{ColumnDate, ColumnRNDifference, ColumnRevenueDifference}

// IsDifference reports whether c is one of the computed difference columns.
func (c Column) IsDifference() bool {
	return c == ColumnRNDifference || c == ColumnRevenueDifference
}

// ParseColumns resolves a comma-separated list of column names.
// An empty list yields nil so the caller can fall back to DefaultColumns.
func ParseColumns(list string) ([]Column, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var cols []Column
	for _, name := range strings.Split(list, ",") {
		col, err := ParseColumn(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// ParseColumn resolves a single column name. Matching is exact after trimming.
func ParseColumn(name string) (Column, error) {
	name = strings.TrimSpace(name)
	for _, c := range AllColumns {
		if string(c) == name {
			return c, nil
		}
	}
	return "", &SchemaError{Source: SourceView, Column: name}
}

// Format renders the value of column c for display.
// Room-night differences are shown without decimals, money with two.
func (r ReconciledRecord) Format(c Column) string {
	switch c {
	case ColumnDate:
		return r.Date.Format(time.DateOnly)
	case ColumnRNA:
		return strconv.FormatFloat(r.RNA, 'f', -1, 64)
	case ColumnRevenueA:
		return r.RevenueA.StringFixed(2)
	case ColumnRNB:
		return strconv.FormatFloat(r.RNB, 'f', -1, 64)
	case ColumnRevenueB:
		return r.RevenueB.StringFixed(2)
	case ColumnRNDifference:
		return strconv.FormatFloat(r.RNDifference, 'f', 0, 64)
	case ColumnRevenueDifference:
		return r.RevenueDifference.StringFixed(2)
	}
	return ""
}
