package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

// ExcelExporter writes the KPI report as an xlsx workbook, one sheet for the
// totals, one per grouping dimension, and one for the customer tiers.
type ExcelExporter struct {
	paths *config.Paths
}

// NewExcelExporter creates a new workbook exporter
func NewExcelExporter(paths *config.Paths) *ExcelExporter {
	return &ExcelExporter{paths: paths}
}

// ExportWorkbook writes the full report workbook
func (x *ExcelExporter) ExportWorkbook(report *domain.KPIReport, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Totals"); err != nil {
		return fmt.Errorf("failed to rename totals sheet: %w", err)
	}
	if err := x.writeTotals(f, report); err != nil {
		return err
	}

	for _, table := range report.Tables() {
		if err := x.writeGroupSheet(f, table); err != nil {
			return err
		}
	}

	if err := x.writeTierSheet(f, report.TierBreakdown); err != nil {
		return err
	}

	fullPath := x.resolvePath(outputPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (x *ExcelExporter) writeTotals(f *excelize.File, report *domain.KPIReport) error {
	rows := [][]interface{}{
		{"Report ID", report.ReportID},
		{"Generated at", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Records", report.RecordCount},
		{"Total revenue", report.TotalRevenue},
		{"Average ticket", report.AverageTicket},
		{"Success rate", report.SuccessRate},
		{"Unique customers", report.UniqueCustomers},
		{"Unique products", report.UniqueProducts},
		{"Min value", report.MinValue},
		{"Max value", report.MaxValue},
		{"Total margin", report.TotalMargin},
		{"Completed-only revenue", report.CompletedOnly},
	}
	return x.writeRows(f, "Totals", rows)
}

func (x *ExcelExporter) writeGroupSheet(f *excelize.File, table domain.GroupedTable) error {
	sheet := sheetNameFor(table.Dimension)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{table.Dimension, "Count", "Revenue", "Average ticket", "Success rate"},
	}
	for _, row := range table.Rows {
		rows = append(rows, []interface{}{
			row.Key, row.Count, row.Revenue, row.AverageTicket, row.SuccessRate,
		})
	}
	return x.writeRows(f, sheet, rows)
}

func (x *ExcelExporter) writeTierSheet(f *excelize.File, breakdown []domain.TierBreakdownRow) error {
	if _, err := f.NewSheet("Tiers"); err != nil {
		return fmt.Errorf("failed to create tier sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Tier", "Customers", "Records", "Revenue"},
	}
	for _, row := range breakdown {
		rows = append(rows, []interface{}{
			string(row.Tier), row.Customers, row.Records, row.Revenue,
		})
	}
	return x.writeRows(f, "Tiers", rows)
}

func (x *ExcelExporter) writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("failed to address cell (%d,%d): %w", colIdx+1, rowIdx+1, err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// sheetNameFor maps a grouping dimension to a worksheet title. Sheet names
// cannot repeat the totals or tier sheets.
func sheetNameFor(dimension string) string {
	switch dimension {
	case "region":
		return "By Region"
	case "product":
		return "By Product"
	case "payment_method":
		return "By Payment Method"
	case "status":
		return "By Status"
	case "month":
		return "By Month"
	default:
		return "By " + dimension
	}
}

func (x *ExcelExporter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return x.paths.GetReportPath(filePath)
}
