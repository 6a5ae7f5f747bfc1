package gateway

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"hotel-reconciliation/internal/domain"
)

const (
	detailSheet   = "Detailed Report"
	accuracySheet = "Accuracy"
	highlightFill = "FFFF00"
	undefinedCell = "n/a"
)

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, report *domain.ReconciliationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteCSV writes the detailed table with a header row.
func WriteCSV(w io.Writer, table domain.Table) error {
	writer := csv.NewWriter(w)
	head := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		head[i] = string(c)
	}
	if err := writer.Write(head); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if err := writer.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// WriteXLSX writes the detailed table and the accuracy KPIs as a workbook.
// Non-zero difference cells are highlighted.
func WriteXLSX(w io.Writer, report *domain.ReconciliationReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), detailSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(accuracySheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{highlightFill}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := writeDetailSheet(f, report.Table, bold, highlight); err != nil {
		return err
	}
	if err := writeAccuracySheet(f, report, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeDetailSheet(f *excelize.File, table domain.Table, bold, highlight int) error {
	head := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		head[i] = string(c)
	}
	if err := f.SetSheetRow(detailSheet, "A1", &head); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if len(head) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(head), 1)
		if err := f.SetCellStyle(detailSheet, "A1", last, bold); err != nil {
			return err
		}
	}

	for i, row := range table.Rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			col := table.Columns[j]
			num, numErr := strconv.ParseFloat(value, 64)
			if col == domain.ColumnDate || numErr != nil {
				err = f.SetCellStr(detailSheet, cell, value)
			} else {
				err = f.SetCellFloat(detailSheet, cell, num, -1, 64)
			}
			if err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
			if col.IsDifference() && numErr == nil && num != 0 {
				if err := f.SetCellStyle(detailSheet, cell, cell, highlight); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeAccuracySheet(f *excelize.File, report *domain.ReconciliationReport, bold int) error {
	past, future := report.KPIs.Past, report.KPIs.Future
	rows := [][]interface{}{
		{"Metric", "Past", "Future"},
		{"RN Accuracy (%)", FormatPercent(past.RNAccuracy), FormatPercent(future.RNAccuracy)},
		{"Revenue Accuracy (%)", FormatPercent(past.RevenueAccuracy), FormatPercent(future.RevenueAccuracy)},
		{"RN Discrepancy (Absolute)", past.RNDiscrepancyAbs, future.RNDiscrepancyAbs},
		{"Revenue Discrepancy (Absolute)", past.RevenueDiscrepancyAbs.StringFixed(2), future.RevenueDiscrepancyAbs.StringFixed(2)},
		{"RN Discrepancy (Sum of Rows)", past.RNRowDiscrepancy, future.RNRowDiscrepancy},
		{"Revenue Discrepancy (Sum of Rows)", past.RevenueRowDiscrepancy.StringFixed(2), future.RevenueRowDiscrepancy.StringFixed(2)},
		{"Rows", past.Rows, future.Rows},
		{"Cutoff", report.Cutoff, ""},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(accuracySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write accuracy row: %w", err)
		}
	}
	return f.SetCellStyle(accuracySheet, "A1", "C1", bold)
}

// FormatPercent renders a KPI percentage with two decimals, or n/a when undefined.
func FormatPercent(v *float64) string {
	if v == nil {
		return undefinedCell
	}
	return strconv.FormatFloat(*v, 'f', 2, 64) + "%"
}
