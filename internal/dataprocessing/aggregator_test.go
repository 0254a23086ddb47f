package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

// threeRecordBatch is the worked reference scenario: two completed sales and
// one cancelled, all in the North region during January 2024.
func threeRecordBatch() []domain.EnrichedSaleRecord {
	build := func(id, customerID, product string, value float64, status domain.SaleStatus) domain.EnrichedSaleRecord {
		record := validRecord(id)
		record.CustomerID = customerID
		record.Product = product
		record.FinalValue = value
		record.Region = domain.RegionNorth
		record.Status = status
		record.Date = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		return domain.EnrichedSaleRecord{
			RawSaleRecord: record,
			Success:       status == domain.StatusCompleted,
			ProfitMargin:  value * 0.30,
			CustomerTier:  domain.TierBronze,
		}
	}
	return []domain.EnrichedSaleRecord{
		build("VND000001", "CLI1000", "Wireless Mouse", 100, domain.StatusCompleted),
		build("VND000002", "CLI1001", "Wireless Mouse", 250, domain.StatusCompleted),
		build("VND000003", "CLI1000", "USB-C Cable", 0, domain.StatusCancelled),
	}
}

func TestAggregator_GlobalTotals(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())

	report := a.Aggregate(context.Background(), threeRecordBatch())

	assert.Equal(t, 3, report.RecordCount)
	assert.InDelta(t, 350.0, report.TotalRevenue, 1e-9)
	assert.InDelta(t, 350.0/3.0, report.AverageTicket, 1e-9)
	assert.InDelta(t, 2.0/3.0, report.SuccessRate, 1e-9)
	assert.Equal(t, 2, report.UniqueCustomers)
	assert.Equal(t, 2, report.UniqueProducts)
	assert.InDelta(t, 0.0, report.MinValue, 1e-9)
	assert.InDelta(t, 250.0, report.MaxValue, 1e-9)
	assert.InDelta(t, 105.0, report.TotalMargin, 1e-9)
	assert.NotEmpty(t, report.ReportID)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestAggregator_SingleGroupMatchesGlobal(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())

	report := a.Aggregate(context.Background(), threeRecordBatch())

	// All three records sit in North, so the region row must equal the
	// global totals.
	north := report.ByRegion.Row(string(domain.RegionNorth))
	require.NotNil(t, north)
	assert.Equal(t, report.RecordCount, north.Count)
	assert.InDelta(t, report.TotalRevenue, north.Revenue, 1e-9)
	assert.InDelta(t, report.AverageTicket, north.AverageTicket, 1e-9)
	assert.InDelta(t, report.SuccessRate, north.SuccessRate, 1e-9)
}

func TestAggregator_GroupRevenueSumsToGlobal(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())

	records := threeRecordBatch()
	records[1].Region = domain.RegionSouth
	records[2].Region = domain.RegionSoutheast

	report := a.Aggregate(context.Background(), records)

	for _, table := range report.Tables() {
		total := 0.0
		count := 0
		for _, row := range table.Rows {
			total += row.Revenue
			count += row.Count
		}
		assert.InDelta(t, report.TotalRevenue, total, 1e-9, "dimension %s", table.Dimension)
		assert.Equal(t, report.RecordCount, count, "dimension %s", table.Dimension)
	}
}

func TestAggregator_GroupOrderFollowsFirstAppearance(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())

	records := threeRecordBatch()
	records[0].Product = "USB-C Cable"
	records[1].Product = "Wireless Mouse"
	records[2].Product = "USB-C Cable"

	report := a.Aggregate(context.Background(), records)

	require.Len(t, report.ByProduct.Rows, 2)
	assert.Equal(t, "USB-C Cable", report.ByProduct.Rows[0].Key)
	assert.Equal(t, "Wireless Mouse", report.ByProduct.Rows[1].Key)
}

func TestAggregator_ByMonthKeys(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())

	records := threeRecordBatch()
	records[2].Date = time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)

	report := a.Aggregate(context.Background(), records)

	require.Len(t, report.ByMonth.Rows, 2)
	assert.Equal(t, "2024-01", report.ByMonth.Rows[0].Key)
	assert.Equal(t, "2024-02", report.ByMonth.Rows[1].Key)
	assert.Equal(t, 2, report.ByMonth.Rows[0].Count)
	assert.Equal(t, 1, report.ByMonth.Rows[1].Count)
}

func TestAggregator_CompletedOnlyRevenue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CompletedOnlyRevenue = true
	a := NewAggregator(nil, cfg)

	records := threeRecordBatch()
	records[2].FinalValue = 999 // cancelled, must not count toward revenue

	report := a.Aggregate(context.Background(), records)

	assert.True(t, report.CompletedOnly)
	assert.InDelta(t, 350.0, report.TotalRevenue, 1e-9)
	// success rate still counts the cancelled record in its denominator
	assert.InDelta(t, 2.0/3.0, report.SuccessRate, 1e-9)
}

func TestAggregator_TierBreakdown(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())

	records := threeRecordBatch()
	records[0].CustomerTier = domain.TierGold
	records[1].CustomerTier = domain.TierSilver
	records[2].CustomerTier = domain.TierGold

	report := a.Aggregate(context.Background(), records)

	require.Len(t, report.TierBreakdown, 3)
	assert.Equal(t, domain.TierGold, report.TierBreakdown[0].Tier)
	assert.Equal(t, 1, report.TierBreakdown[0].Customers) // CLI1000 owns both gold records
	assert.Equal(t, 2, report.TierBreakdown[0].Records)
	assert.InDelta(t, 100.0, report.TierBreakdown[0].Revenue, 1e-9)
	assert.Equal(t, domain.TierSilver, report.TierBreakdown[1].Tier)
	assert.Equal(t, 1, report.TierBreakdown[1].Customers)
	assert.Equal(t, domain.TierBronze, report.TierBreakdown[2].Tier)
	assert.Equal(t, 0, report.TierBreakdown[2].Customers)
}

func TestAggregator_EmptyBatch(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())

	report := a.Aggregate(context.Background(), nil)

	assert.Equal(t, 0, report.RecordCount)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.AverageTicket)
	assert.Zero(t, report.SuccessRate)
	assert.Empty(t, report.ByRegion.Rows)
}

func TestAggregator_MetricsIdempotent(t *testing.T) {
	a := NewAggregator(nil, DefaultConfig())
	records := threeRecordBatch()

	first := a.Aggregate(context.Background(), records)
	second := a.Aggregate(context.Background(), records)

	// Identifier and timestamp differ per run; every metric must not.
	first.ReportID, second.ReportID = "", ""
	first.GeneratedAt, second.GeneratedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}
