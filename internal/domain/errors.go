package domain

import (
	"errors"
	"fmt"
)

// Source identifies where a failing value came from.
type Source string

const (
	SourceDailyTotals Source = "daily_totals"
	SourceStatistics  Source = "statistics"
	SourceView        Source = "view"
)

// ErrNoOverlap describes a reconciliation whose inputs share no dates.
// It is reported as a message on the report, not returned as an error.
var ErrNoOverlap = errors.New("no matching dates between the two reports, please check the file formats and contents")

// SchemaError is returned when a required column is absent after trimming headers.
type SchemaError struct {
	Source Source
	Column string
}

func (e *SchemaError) Error() string {
	if e.Source == SourceView {
		return fmt.Sprintf("unknown column %q", e.Column)
	}
	return fmt.Sprintf("%s: required column %q not found", e.Source, e.Column)
}

// ParseError is returned when a cell cannot be coerced to a date or number.
// Row is 1-based and counts the header row.
type ParseError struct {
	Source Source
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d: could not parse %s %q: %v", e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError is returned when an export cannot be read as its expected file
// format at all, e.g. an empty text file or a spreadsheet that is not xlsx.
type FormatError struct {
	Source Source
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: unreadable file, please check the file format and contents: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err was caused by the content of an uploaded report.
func IsInputError(err error) bool {
	var schemaErr *SchemaError
	var parseErr *ParseError
	var formatErr *FormatError
	return errors.As(err, &schemaErr) || errors.As(err, &parseErr) || errors.As(err, &formatErr)
}
