package domain

import (
	"time"
)

// GroupMetrics holds the four standard metrics computed for one group of
// records sharing a dimension value.
type GroupMetrics struct {
	Key           string  `json:"key"`
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
	SuccessRate   float64 `json:"success_rate"`
}

// GroupedTable is one dimension's breakdown. Rows appear in order of first
// appearance in the batch unless re-sorted for presentation.
type GroupedTable struct {
	Dimension string         `json:"dimension"`
	Rows      []GroupMetrics `json:"rows"`
}

// Row returns the metrics row for the given key, or nil when absent.
func (t GroupedTable) Row(key string) *GroupMetrics {
	for i := range t.Rows {
		if t.Rows[i].Key == key {
			return &t.Rows[i]
		}
	}
	return nil
}

// TotalRevenue sums revenue across every row of the table. For a complete
// dimension this must equal the report's global revenue.
func (t GroupedTable) TotalRevenue() float64 {
	var total float64
	for _, row := range t.Rows {
		total += row.Revenue
	}
	return total
}

// TierBreakdownRow summarizes one customer tier's share of the batch.
type TierBreakdownRow struct {
	Tier      Tier    `json:"tier"`
	Customers int     `json:"customers"`
	Records   int     `json:"records"`
	Revenue   float64 `json:"revenue"`
}

// KPIReport is a read-only snapshot of the batch's summary metrics.
// It is produced fresh on every pipeline run.
type KPIReport struct {
	ReportID    string    `json:"report_id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Global totals.
	RecordCount     int     `json:"record_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageTicket   float64 `json:"average_ticket"`
	SuccessRate     float64 `json:"success_rate"`
	UniqueCustomers int     `json:"unique_customers"`
	UniqueProducts  int     `json:"unique_products"`
	MinValue        float64 `json:"min_value"`
	MaxValue        float64 `json:"max_value"`
	TotalMargin     float64 `json:"total_margin"`

	// CompletedOnly records whether revenue excluded non-completed sales.
	CompletedOnly bool `json:"completed_only"`

	// Grouped breakdowns, one table per dimension.
	ByRegion        GroupedTable `json:"by_region"`
	ByProduct       GroupedTable `json:"by_product"`
	ByPaymentMethod GroupedTable `json:"by_payment_method"`
	ByStatus        GroupedTable `json:"by_status"`
	ByMonth         GroupedTable `json:"by_month"`

	// Tier population and revenue shares.
	TierBreakdown []TierBreakdownRow `json:"tier_breakdown"`
}

// Tables returns every grouped table in presentation order.
func (r *KPIReport) Tables() []GroupedTable {
	return []GroupedTable{r.ByRegion, r.ByProduct, r.ByPaymentMethod, r.ByStatus, r.ByMonth}
}
