package dataprocessing

import (
	"fmt"
	"math"

	"salespulse/internal/errors"
)

// TierCuts are the customer-population percentile cut points, highest
// spenders first. They partition the ranked customer population, not its
// revenue, and must sum to 100.
type TierCuts struct {
	GoldPercent   float64
	SilverPercent float64
	BronzePercent float64
}

// Config holds every tunable of the pipeline. It is treated as immutable
// once validated; concurrent runs with different Configs never interfere.
type Config struct {
	// BucketBoundaries are strictly increasing upper bounds of the value
	// buckets. The final bucket is open-ended, so every non-negative
	// monetary value falls in exactly one bucket.
	BucketBoundaries []float64
	// BucketLabels has exactly one more entry than BucketBoundaries.
	BucketLabels []string

	// DeliveryThresholds are strictly increasing upper bounds in days of
	// the delivery categories; the final category is open-ended.
	DeliveryThresholds []int
	// DeliveryLabels has exactly one more entry than DeliveryThresholds.
	DeliveryLabels []string

	TierCuts TierCuts

	// CompletedOnlyRevenue excludes non-completed sales from revenue sums
	// when set. Counts and success rates are unaffected.
	CompletedOnlyRevenue bool

	// MarginRate is the simulated profit margin applied to final values,
	// in [0, 1].
	MarginRate float64

	// Workers bounds the number of goroutines used to enrich a batch.
	// Values below two mean sequential enrichment.
	Workers int
}

// DefaultConfig returns the reference configuration used by the standard
// reports.
func DefaultConfig() Config {
	return Config{
		BucketBoundaries:   []float64{1000, 5000, 10000},
		BucketLabels:       []string{"Low (<1k)", "Medium (1k-5k)", "High (5k-10k)", "Premium (>10k)"},
		DeliveryThresholds: []int{7, 14, 21},
		DeliveryLabels:     []string{"Fast (1-7d)", "Normal (8-14d)", "Slow (15-21d)", "Very Slow (22d+)"},
		TierCuts: TierCuts{
			GoldPercent:   15,
			SilverPercent: 38,
			BronzePercent: 47,
		},
		CompletedOnlyRevenue: false,
		MarginRate:           0.30,
		Workers:              1,
	}
}

// Validate checks the configuration invariants. A failure here is fatal to
// the run; the pipeline constructor refuses an invalid Config.
func (c Config) Validate() error {
	if len(c.BucketBoundaries) == 0 {
		return errors.NewConfigError("at least one bucket boundary is required", nil)
	}
	if len(c.BucketLabels) != len(c.BucketBoundaries)+1 {
		return errors.NewConfigError(fmt.Sprintf(
			"bucket labels must number one more than boundaries: got %d labels for %d boundaries",
			len(c.BucketLabels), len(c.BucketBoundaries)), nil)
	}
	if c.BucketBoundaries[0] <= 0 {
		return errors.NewConfigError("first bucket boundary must be positive", nil)
	}
	for i := 1; i < len(c.BucketBoundaries); i++ {
		if c.BucketBoundaries[i] <= c.BucketBoundaries[i-1] {
			return errors.NewConfigError("bucket boundaries must be strictly increasing", nil)
		}
	}

	if len(c.DeliveryThresholds) == 0 {
		return errors.NewConfigError("at least one delivery threshold is required", nil)
	}
	if len(c.DeliveryLabels) != len(c.DeliveryThresholds)+1 {
		return errors.NewConfigError(fmt.Sprintf(
			"delivery labels must number one more than thresholds: got %d labels for %d thresholds",
			len(c.DeliveryLabels), len(c.DeliveryThresholds)), nil)
	}
	if c.DeliveryThresholds[0] < 1 {
		return errors.NewConfigError("first delivery threshold must be at least one day", nil)
	}
	for i := 1; i < len(c.DeliveryThresholds); i++ {
		if c.DeliveryThresholds[i] <= c.DeliveryThresholds[i-1] {
			return errors.NewConfigError("delivery thresholds must be strictly increasing", nil)
		}
	}

	cuts := c.TierCuts
	if cuts.GoldPercent < 0 || cuts.SilverPercent < 0 || cuts.BronzePercent < 0 {
		return errors.NewConfigError("tier cut points must be non-negative", nil)
	}
	if sum := cuts.GoldPercent + cuts.SilverPercent + cuts.BronzePercent; math.Abs(sum-100) > 0.01 {
		return errors.NewConfigError(fmt.Sprintf("tier cut points must sum to 100, got %.2f", sum), nil)
	}

	if c.MarginRate < 0 || c.MarginRate > 1 {
		return errors.NewConfigError(fmt.Sprintf("margin rate must be within [0, 1], got %.2f", c.MarginRate), nil)
	}

	if c.Workers < 0 {
		return errors.NewConfigError("workers must be non-negative", nil)
	}

	return nil
}
