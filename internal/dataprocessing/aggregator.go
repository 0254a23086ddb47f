package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"salespulse/pkg/contracts/domain"
)

// Aggregator computes the KPI report for an enriched, tier-annotated batch.
// Aggregation is idempotent: the same batch always yields the same metrics
// (only the report identifier and generation timestamp differ between runs).
type Aggregator struct {
	cfg    Config
	logger *slog.Logger
}

// NewAggregator creates an aggregator for an already-validated configuration.
func NewAggregator(logger *slog.Logger, cfg Config) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "aggregator")),
	}
}

// Aggregate computes global totals and one grouped table per dimension.
// Group rows appear in order of first appearance in the batch; no group is
// dropped or double-counted. Average ticket is defined as zero when the
// record count is zero.
func (a *Aggregator) Aggregate(ctx context.Context, records []domain.EnrichedSaleRecord) *domain.KPIReport {
	report := &domain.KPIReport{
		ReportID:      uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		RecordCount:   len(records),
		CompletedOnly: a.cfg.CompletedOnlyRevenue,
	}

	customers := make(map[string]bool)
	products := make(map[string]bool)
	successCount := 0

	for i, record := range records {
		revenue := a.revenueOf(record)
		report.TotalRevenue += revenue
		report.TotalMargin += record.ProfitMargin

		if record.Success {
			successCount++
		}
		customers[record.CustomerID] = true
		products[record.Product] = true

		if i == 0 || record.FinalValue < report.MinValue {
			report.MinValue = record.FinalValue
		}
		if record.FinalValue > report.MaxValue {
			report.MaxValue = record.FinalValue
		}
	}

	report.UniqueCustomers = len(customers)
	report.UniqueProducts = len(products)
	if report.RecordCount > 0 {
		report.AverageTicket = report.TotalRevenue / float64(report.RecordCount)
		report.SuccessRate = float64(successCount) / float64(report.RecordCount)
	}

	report.ByRegion = a.groupBy(records, "region", func(r domain.EnrichedSaleRecord) string {
		return string(r.Region)
	})
	report.ByProduct = a.groupBy(records, "product", func(r domain.EnrichedSaleRecord) string {
		return r.Product
	})
	report.ByPaymentMethod = a.groupBy(records, "payment_method", func(r domain.EnrichedSaleRecord) string {
		return string(r.PaymentMethod)
	})
	report.ByStatus = a.groupBy(records, "status", func(r domain.EnrichedSaleRecord) string {
		return string(r.Status)
	})
	report.ByMonth = a.groupBy(records, "month", func(r domain.EnrichedSaleRecord) string {
		return r.Date.UTC().Format("2006-01")
	})

	report.TierBreakdown = a.tierBreakdown(records)

	a.logger.InfoContext(ctx, "KPI aggregation complete",
		slog.String("report_id", report.ReportID),
		slog.Int("records", report.RecordCount),
		slog.Float64("total_revenue", report.TotalRevenue),
		slog.Int("unique_customers", report.UniqueCustomers))

	return report
}

// revenueOf applies the revenue-inclusion flag. The reference report counts
// all statuses toward revenue and reports success rate separately.
func (a *Aggregator) revenueOf(record domain.EnrichedSaleRecord) float64 {
	if a.cfg.CompletedOnlyRevenue && !record.Success {
		return 0
	}
	return record.FinalValue
}

// groupBy computes the four standard metrics per distinct key, in order of
// first appearance.
func (a *Aggregator) groupBy(records []domain.EnrichedSaleRecord, dimension string, keyOf func(domain.EnrichedSaleRecord) string) domain.GroupedTable {
	type accumulator struct {
		count   int
		revenue float64
		success int
	}

	index := make(map[string]int)
	var keys []string
	var groups []accumulator

	for _, record := range records {
		key := keyOf(record)
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			keys = append(keys, key)
			groups = append(groups, accumulator{})
		}
		groups[i].count++
		groups[i].revenue += a.revenueOf(record)
		if record.Success {
			groups[i].success++
		}
	}

	table := domain.GroupedTable{
		Dimension: dimension,
		Rows:      make([]domain.GroupMetrics, len(groups)),
	}
	for i, key := range keys {
		group := groups[i]
		row := domain.GroupMetrics{
			Key:     key,
			Count:   group.count,
			Revenue: group.revenue,
		}
		if group.count > 0 {
			row.AverageTicket = group.revenue / float64(group.count)
			row.SuccessRate = float64(group.success) / float64(group.count)
		}
		table.Rows[i] = row
	}

	return table
}

// tierBreakdown summarizes population, record and revenue share per tier,
// highest tier first.
func (a *Aggregator) tierBreakdown(records []domain.EnrichedSaleRecord) []domain.TierBreakdownRow {
	customersByTier := make(map[domain.Tier]map[string]bool)
	rows := make(map[domain.Tier]*domain.TierBreakdownRow)

	for _, tier := range domain.Tiers() {
		customersByTier[tier] = make(map[string]bool)
		rows[tier] = &domain.TierBreakdownRow{Tier: tier}
	}

	for _, record := range records {
		row, ok := rows[record.CustomerTier]
		if !ok {
			continue // unannotated record, not attributable to a tier
		}
		row.Records++
		row.Revenue += a.revenueOf(record)
		customersByTier[record.CustomerTier][record.CustomerID] = true
	}

	breakdown := make([]domain.TierBreakdownRow, 0, len(domain.Tiers()))
	for _, tier := range domain.Tiers() {
		row := *rows[tier]
		row.Customers = len(customersByTier[tier])
		breakdown = append(breakdown, row)
	}
	return breakdown
}
