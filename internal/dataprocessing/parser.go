package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

// dateFormats are the accepted timestamp layouts, tried in order.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// requiredColumns must all appear in the header row of a raw dataset.
var requiredColumns = []string{
	"id", "date", "customer_id", "product", "final_value",
	"region", "payment_method", "status",
}

// ParseFile reads a raw sales dataset from a CSV file.
func ParseFile(path string) ([]domain.RawSaleRecord, []domain.RejectedRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewStorageError("failed to open raw dataset", err).WithContext("path", path)
	}
	defer file.Close()

	return ParseCSV(file)
}

// ParseCSV reads raw sale records from delimited text: a header row naming
// each field, one record per line, RFC 4180 quoting. Rows that cannot be
// typed are reported as rejected records with their line number; only a
// missing header or an unreadable stream is an error.
func ParseCSV(r io.Reader) ([]domain.RawSaleRecord, []domain.RejectedRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.NewParsingError("raw dataset has no header row", nil)
	}
	if err != nil {
		return nil, nil, errors.NewParsingError("failed to read header row", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, nil, errors.NewParsingError(fmt.Sprintf("missing required column: %s", name), nil)
		}
	}

	var records []domain.RawSaleRecord
	var rejected []domain.RejectedRecord

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.NewParsingError(fmt.Sprintf("failed to read line %d", line), err)
		}

		record, reason := parseRow(row, columns)
		if reason != "" {
			rejected = append(rejected, domain.RejectedRecord{
				ID:     cell(row, columns, "id"),
				Line:   line,
				Reason: reason,
			})
			continue
		}
		records = append(records, record)
	}

	return records, rejected, nil
}

// parseRow types one CSV row. It returns a non-empty reason when a field
// cannot be converted; enumeration and range checks are left to the
// schema validator.
func parseRow(row []string, columns map[string]int) (domain.RawSaleRecord, string) {
	record := domain.RawSaleRecord{
		ID:            cell(row, columns, "id"),
		CustomerID:    cell(row, columns, "customer_id"),
		CustomerName:  cell(row, columns, "customer_name"),
		Product:       cell(row, columns, "product"),
		Category:      cell(row, columns, "category"),
		Region:        domain.Region(cell(row, columns, "region")),
		PaymentMethod: domain.PaymentMethod(cell(row, columns, "payment_method")),
		Status:        domain.SaleStatus(cell(row, columns, "status")),
	}

	if raw := cell(row, columns, "date"); raw != "" {
		date, ok := parseDate(raw)
		if !ok {
			return record, fmt.Sprintf("wrong type: date %q", raw)
		}
		record.Date = date
	}

	var reason string
	record.Quantity, reason = parseIntCell(row, columns, "quantity", reason)
	record.UnitPrice, reason = parseFloatCell(row, columns, "unit_price", reason)
	record.GrossValue, reason = parseFloatCell(row, columns, "gross_value", reason)
	record.DiscountPercent, reason = parseFloatCell(row, columns, "discount_percent", reason)
	record.FinalValue, reason = parseFloatCell(row, columns, "final_value", reason)
	if reason != "" {
		return record, reason
	}

	if raw := cell(row, columns, "delivery_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return record, fmt.Sprintf("wrong type: delivery_days %q", raw)
		}
		record.DeliveryDays = &days
	}

	return record, ""
}

// cell returns the trimmed value of a named column, or "" when the column
// is absent or the row is short.
func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloatCell(row []string, columns map[string]int, name string, reason string) (float64, string) {
	if reason != "" {
		return 0, reason
	}
	raw := cell(row, columns, name)
	if raw == "" {
		return 0, ""
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Sprintf("wrong type: %s %q", name, raw)
	}
	return value, ""
}

func parseIntCell(row []string, columns map[string]int, name string, reason string) (int, string) {
	if reason != "" {
		return 0, reason
	}
	raw := cell(row, columns, name)
	if raw == "" {
		return 0, ""
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Sprintf("wrong type: %s %q", name, raw)
	}
	return value, ""
}

// parseDate tries each accepted layout in order. Timestamps without an
// explicit zone are taken as UTC, the pipeline's fixed calendar convention.
func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if date, err := time.Parse(layout, raw); err == nil {
			return date.UTC(), true
		}
	}
	return time.Time{}, false
}
