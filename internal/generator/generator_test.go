package generator

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

func TestNewGenerator_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero record count", func(c *Config) { c.RecordCount = 0 }},
		{"negative record count", func(c *Config) { c.RecordCount = -5 }},
		{"empty date window", func(c *Config) { c.DateTo = c.DateFrom }},
		{"inverted date window", func(c *Config) { c.DateFrom, c.DateTo = c.DateTo, c.DateFrom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			g, err := NewGenerator(nil, cfg)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
		})
	}
}

func TestGenerator_DeterministicForFixedSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordCount = 200

	first, err := NewGenerator(nil, cfg)
	require.NoError(t, err)
	second, err := NewGenerator(nil, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Generate(), second.Generate())
}

func TestGenerator_DifferentSeedsDiffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordCount = 200

	a, err := NewGenerator(nil, cfg)
	require.NoError(t, err)

	cfg.Seed = 7
	b, err := NewGenerator(nil, cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a.Generate(), b.Generate())
}

func TestGenerator_RecordShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordCount = 500

	g, err := NewGenerator(nil, cfg)
	require.NoError(t, err)
	records := g.Generate()
	require.Len(t, records, 500)

	idPattern := regexp.MustCompile(`^VND\d{6}$`)
	customerPattern := regexp.MustCompile(`^CLI\d{4}$`)

	seen := make(map[string]bool, len(records))
	for i, record := range records {
		assert.Regexp(t, idPattern, record.ID)
		assert.False(t, seen[record.ID], "duplicate id %s", record.ID)
		seen[record.ID] = true

		assert.Regexp(t, customerPattern, record.CustomerID)
		assert.NotEmpty(t, record.CustomerName)
		assert.NotEmpty(t, record.Product)
		assert.NotEmpty(t, record.Category)

		assert.GreaterOrEqual(t, record.Quantity, 1)
		assert.LessOrEqual(t, record.Quantity, 5)
		assert.InDelta(t, record.UnitPrice*float64(record.Quantity), record.GrossValue, 1e-9)
		assert.Contains(t, []float64{0, 5, 10, 15, 20}, record.DiscountPercent)
		expectedFinal := record.GrossValue * (1 - record.DiscountPercent/100)
		assert.InDelta(t, expectedFinal, record.FinalValue, 0.005)

		assert.True(t, record.Region.IsValid(), "record %d region %q", i, record.Region)
		assert.True(t, record.PaymentMethod.IsValid())
		assert.True(t, record.Status.IsValid())

		assert.False(t, record.Date.Before(cfg.DateFrom))
		assert.False(t, record.Date.After(cfg.DateTo))

		if record.Status == domain.StatusCompleted {
			require.NotNil(t, record.DeliveryDays)
			assert.GreaterOrEqual(t, *record.DeliveryDays, 1)
			assert.LessOrEqual(t, *record.DeliveryDays, 30)
		} else {
			assert.Nil(t, record.DeliveryDays)
		}
	}
}

func TestGenerator_StatusWeighting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordCount = 5000

	g, err := NewGenerator(nil, cfg)
	require.NoError(t, err)

	counts := make(map[domain.SaleStatus]int)
	for _, record := range g.Generate() {
		counts[record.Status]++
	}

	total := float64(cfg.RecordCount)
	assert.InDelta(t, 0.75, float64(counts[domain.StatusCompleted])/total, 0.05)
	assert.InDelta(t, 0.15, float64(counts[domain.StatusPending])/total, 0.05)
	assert.InDelta(t, 0.05, float64(counts[domain.StatusCancelled])/total, 0.03)
	assert.InDelta(t, 0.05, float64(counts[domain.StatusReturned])/total, 0.03)
}

func TestRows_MatchHeaders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordCount = 10

	g, err := NewGenerator(nil, cfg)
	require.NoError(t, err)
	records := g.Generate()

	rows := Rows(records)
	require.Len(t, rows, len(records))

	headers := Headers()
	for _, row := range rows {
		assert.Len(t, row, len(headers))
	}

	// pending sales have no delivery cell
	for i, record := range records {
		delivery := rows[i][len(headers)-1]
		if record.DeliveryDays == nil {
			assert.Empty(t, delivery)
		} else {
			assert.NotEmpty(t, delivery)
		}
	}
}

func TestRows_DateFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordCount = 5

	g, err := NewGenerator(nil, cfg)
	require.NoError(t, err)

	for _, row := range Rows(g.Generate()) {
		_, err := time.Parse("2006-01-02", row[1])
		assert.NoError(t, err)
		assert.False(t, strings.Contains(row[1], " "))
	}
}
