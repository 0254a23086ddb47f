package generator

import (
	"fmt"
	"strconv"

	"salespulse/pkg/contracts/domain"
)

// Headers returns the raw dataset CSV column order. It matches what the
// pipeline parser expects to find.
func Headers() []string {
	return []string{
		"id", "date", "customer_id", "customer_name", "product", "category",
		"quantity", "unit_price", "gross_value", "discount_percent", "final_value",
		"region", "payment_method", "status", "delivery_days",
	}
}

// Rows converts a generated batch into CSV rows in Headers order.
func Rows(records []domain.RawSaleRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		delivery := ""
		if record.DeliveryDays != nil {
			delivery = strconv.Itoa(*record.DeliveryDays)
		}
		rows = append(rows, []string{
			record.ID,
			record.Date.UTC().Format("2006-01-02"),
			record.CustomerID,
			record.CustomerName,
			record.Product,
			record.Category,
			strconv.Itoa(record.Quantity),
			fmt.Sprintf("%.2f", record.UnitPrice),
			fmt.Sprintf("%.2f", record.GrossValue),
			fmt.Sprintf("%.2f", record.DiscountPercent),
			fmt.Sprintf("%.2f", record.FinalValue),
			string(record.Region),
			string(record.PaymentMethod),
			string(record.Status),
			delivery,
		})
	}
	return rows
}
