package dataprocessing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

func TestNewPipeline_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TierCuts.GoldPercent = 40 // cuts no longer sum to 100

	pipeline, err := NewPipeline(nil, cfg)
	require.Error(t, err)
	assert.Nil(t, pipeline)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}

func TestPipeline_Run_EndToEnd(t *testing.T) {
	pipeline, err := NewPipeline(nil, DefaultConfig())
	require.NoError(t, err)

	raw := make([]domain.RawSaleRecord, 0, 12)
	for i := 0; i < 12; i++ {
		record := validRecord(fmt.Sprintf("VND%06d", i+1))
		record.CustomerID = fmt.Sprintf("CLI%04d", 1000+i%4)
		record.FinalValue = float64((i + 1) * 500)
		record.Date = time.Date(2024, time.Month(i%3+1), 10, 0, 0, 0, 0, time.UTC)
		raw = append(raw, record)
	}

	result, err := pipeline.Run(context.Background(), raw)
	require.NoError(t, err)

	assert.Len(t, result.Enriched, 12)
	assert.Empty(t, result.Rejected)
	assert.Len(t, result.Profiles, 4)
	require.NotNil(t, result.Report)
	assert.Equal(t, 12, result.Report.RecordCount)
	assert.Equal(t, 4, result.Report.UniqueCustomers)

	// every enriched record carries a tier assigned from its profile
	for _, record := range result.Enriched {
		assert.NotEqual(t, domain.TierUnknown, record.CustomerTier)
		assert.Equal(t, result.Profiles[record.CustomerID].Tier, record.CustomerTier)
	}
}

func TestPipeline_Run_RejectedRecordExcludedFromAggregates(t *testing.T) {
	pipeline, err := NewPipeline(nil, DefaultConfig())
	require.NoError(t, err)

	good := validRecord("VND000001")
	good.FinalValue = 100
	bad := validRecord("VND000002")
	bad.FinalValue = -50

	result, err := pipeline.Run(context.Background(), []domain.RawSaleRecord{good, bad})
	require.NoError(t, err)

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "VND000002", result.Rejected[0].ID)
	assert.Equal(t, "negative value: final_value", result.Rejected[0].Reason)

	assert.Equal(t, 1, result.Report.RecordCount)
	assert.InDelta(t, 100.0, result.Report.TotalRevenue, 1e-9)
	assert.Len(t, result.Enriched, 1)
}

func TestPipeline_Run_NoValidRecordsIsFatal(t *testing.T) {
	pipeline, err := NewPipeline(nil, DefaultConfig())
	require.NoError(t, err)

	bad := validRecord("VND000001")
	bad.FinalValue = -1

	tests := []struct {
		name string
		raw  []domain.RawSaleRecord
	}{
		{"empty input", nil},
		{"all rejected", []domain.RawSaleRecord{bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := pipeline.Run(context.Background(), tt.raw)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
		})
	}
}

func TestPipeline_Run_MetricsReproducible(t *testing.T) {
	pipeline, err := NewPipeline(nil, DefaultConfig())
	require.NoError(t, err)

	raw := make([]domain.RawSaleRecord, 0, 30)
	for i := 0; i < 30; i++ {
		record := validRecord(fmt.Sprintf("VND%06d", i+1))
		record.CustomerID = fmt.Sprintf("CLI%04d", 1000+i%7)
		record.FinalValue = float64(i*311%9000) + 1
		raw = append(raw, record)
	}

	first, err := pipeline.Run(context.Background(), raw)
	require.NoError(t, err)
	second, err := pipeline.Run(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, first.Enriched, second.Enriched)
	assert.Equal(t, first.Profiles, second.Profiles)
	assert.InDelta(t, first.Report.TotalRevenue, second.Report.TotalRevenue, 1e-9)
	assert.Equal(t, first.Report.RecordCount, second.Report.RecordCount)
}
