package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

// ReportExporter renders the KPI report as JSON and as a plain-text summary.
type ReportExporter struct {
	paths *config.Paths
}

// NewReportExporter creates a new KPI report exporter
func NewReportExporter(paths *config.Paths) *ReportExporter {
	return &ReportExporter{paths: paths}
}

// jsonEnvelope wraps the report with file-level metadata so consumers can
// check the payload shape before decoding the body.
type jsonEnvelope struct {
	Schema string            `json:"schema"`
	Report *domain.KPIReport `json:"report"`
}

const reportSchema = "salespulse/kpi-report/v1"

// ExportJSON writes the full report as indented JSON
func (r *ReportExporter) ExportJSON(report *domain.KPIReport, outputPath string) error {
	data, err := json.MarshalIndent(jsonEnvelope{
		Schema: reportSchema,
		Report: report,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	fullPath := r.resolvePath(outputPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// ExportTextSummary writes the human-readable run summary. The layout is
// fixed-width so the file reads cleanly in a terminal.
func (r *ReportExporter) ExportTextSummary(report *domain.KPIReport, outputPath string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "SALES KPI REPORT\n")
	fmt.Fprintf(&b, "================\n")
	fmt.Fprintf(&b, "Report ID:    %s\n", report.ReportID)
	fmt.Fprintf(&b, "Generated:    %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if report.CompletedOnly {
		fmt.Fprintf(&b, "Revenue mode: completed sales only\n")
	} else {
		fmt.Fprintf(&b, "Revenue mode: all statuses\n")
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "TOTALS\n")
	fmt.Fprintf(&b, "  Records:          %d\n", report.RecordCount)
	fmt.Fprintf(&b, "  Total revenue:    %s\n", formatFloat(report.TotalRevenue))
	fmt.Fprintf(&b, "  Average ticket:   %s\n", formatFloat(report.AverageTicket))
	fmt.Fprintf(&b, "  Success rate:     %s\n", formatPercent(report.SuccessRate))
	fmt.Fprintf(&b, "  Unique customers: %d\n", report.UniqueCustomers)
	fmt.Fprintf(&b, "  Unique products:  %d\n", report.UniqueProducts)
	fmt.Fprintf(&b, "  Min / max value:  %s / %s\n", formatFloat(report.MinValue), formatFloat(report.MaxValue))
	fmt.Fprintf(&b, "  Total margin:     %s\n", formatFloat(report.TotalMargin))
	fmt.Fprintf(&b, "\n")

	for _, table := range report.Tables() {
		fmt.Fprintf(&b, "BY %s\n", strings.ToUpper(table.Dimension))
		for _, row := range table.Rows {
			fmt.Fprintf(&b, "  %-24s count=%-6d revenue=%-14s ticket=%-10s success=%s\n",
				row.Key, row.Count, formatFloat(row.Revenue),
				formatFloat(row.AverageTicket), formatPercent(row.SuccessRate))
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "CUSTOMER TIERS\n")
	for _, row := range report.TierBreakdown {
		fmt.Fprintf(&b, "  %-8s customers=%-6d records=%-6d revenue=%s\n",
			row.Tier, row.Customers, row.Records, formatFloat(row.Revenue))
	}

	fullPath := r.resolvePath(outputPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

func (r *ReportExporter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return r.paths.GetReportPath(filePath)
}
