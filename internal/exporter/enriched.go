package exporter

import (
	"fmt"
	"sort"

	"salespulse/internal/config"
	"salespulse/pkg/contracts/domain"
)

// EnrichedExporter writes processed sale records and rejection audits to CSV.
type EnrichedExporter struct {
	csvWriter *CSVWriter
}

// NewEnrichedExporter creates a new processed-dataset exporter
func NewEnrichedExporter(paths *config.Paths) *EnrichedExporter {
	return &EnrichedExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportEnriched writes the full enriched batch to a single CSV file. The
// column order is the raw input columns followed by every derived column, so
// the output stands alone without the raw file next to it.
func (e *EnrichedExporter) ExportEnriched(records []domain.EnrichedSaleRecord, outputPath string) error {
	csvRecords := make([][]string, 0, len(records))
	for _, record := range records {
		csvRecords = append(csvRecords, e.recordToCSVRow(record))
	}

	// No BOM: the processed file feeds analysis tools, not Excel
	return e.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   e.getHeaders(),
		Records:   csvRecords,
		Append:    false,
		BOMPrefix: false,
	})
}

// ExportEnrichedStreaming writes the enriched batch through a stream writer,
// for datasets too large to buffer as [][]string.
func (e *EnrichedExporter) ExportEnrichedStreaming(records []domain.EnrichedSaleRecord, outputPath string) error {
	stream, err := e.csvWriter.CreateStreamWriter(outputPath, e.getHeaders())
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	for _, record := range records {
		if err := stream.WriteRecord(e.recordToCSVRow(record)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record %s: %w", record.ID, err)
		}
	}

	return stream.Close()
}

// ExportRejected writes the rejection audit file, one row per record that
// failed validation or typing, ordered by input line.
func (e *EnrichedExporter) ExportRejected(rejected []domain.RejectedRecord, outputPath string) error {
	sorted := make([]domain.RejectedRecord, len(rejected))
	copy(sorted, rejected)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Line < sorted[j].Line })

	csvRecords := make([][]string, 0, len(sorted))
	for _, record := range sorted {
		csvRecords = append(csvRecords, []string{
			record.ID,
			formatInt(record.Line),
			record.Reason,
		})
	}

	return e.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   []string{"id", "line", "reason"},
		Records:   csvRecords,
		Append:    false,
		BOMPrefix: false,
	})
}

// getHeaders returns the CSV headers for enriched sale records
func (e *EnrichedExporter) getHeaders() []string {
	return []string{
		"id", "date", "customer_id", "customer_name", "product", "category",
		"quantity", "unit_price", "gross_value", "discount_percent", "final_value",
		"region", "payment_method", "status", "delivery_days",
		"year", "month", "month_name", "quarter", "week", "weekday",
		"value_bucket", "delivery_category", "success", "profit_margin", "customer_tier",
	}
}

// recordToCSVRow converts an enriched sale record to a CSV row
func (e *EnrichedExporter) recordToCSVRow(record domain.EnrichedSaleRecord) []string {
	return []string{
		record.ID,
		record.Date.UTC().Format("2006-01-02"),
		record.CustomerID,
		record.CustomerName,
		record.Product,
		record.Category,
		formatInt(record.Quantity),
		formatFloat(record.UnitPrice),
		formatFloat(record.GrossValue),
		formatFloat(record.DiscountPercent),
		formatFloat(record.FinalValue),
		string(record.Region),
		string(record.PaymentMethod),
		string(record.Status),
		formatOptionalInt(record.DeliveryDays),
		formatInt(record.Year),
		formatInt(record.Month),
		record.MonthName,
		formatInt(record.Quarter),
		formatInt(record.Week),
		record.Weekday,
		record.ValueBucket,
		record.DeliveryCategory,
		formatBool(record.Success),
		formatFloat(record.ProfitMargin),
		string(record.CustomerTier),
	}
}
