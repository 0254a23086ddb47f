package dataprocessing

import (
	"log/slog"
	"math"
	"sort"

	"salespulse/pkg/contracts/domain"
)

// Segmenter classifies customers into spend tiers. Tier boundaries are
// defined over the whole customer population, so segmentation requires the
// complete enriched batch; it cannot run record-by-record.
type Segmenter struct {
	cfg    Config
	logger *slog.Logger
}

// NewSegmenter creates a segmenter for an already-validated configuration.
func NewSegmenter(logger *slog.Logger, cfg Config) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "segmenter")),
	}
}

// Segment builds one CustomerProfile per unique customer in the batch and
// assigns each a tier by spend rank. The algorithm is an explicit two-pass
// collect-then-rank: first sum spend per customer, then rank descending and
// partition by the configured population cut points. Ties in total spend are
// broken by ascending customer identifier so assignments are reproducible
// across runs.
func (s *Segmenter) Segment(records []domain.EnrichedSaleRecord) map[string]domain.CustomerProfile {
	profiles := make(map[string]domain.CustomerProfile)

	for _, record := range records {
		profile := profiles[record.CustomerID]
		profile.CustomerID = record.CustomerID
		profile.TotalSpend += record.FinalValue
		profile.RecordCount++
		profiles[record.CustomerID] = profile
	}

	if len(profiles) == 0 {
		return profiles
	}

	ranked := make([]string, 0, len(profiles))
	for id := range profiles {
		ranked = append(ranked, id)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := profiles[ranked[i]], profiles[ranked[j]]
		if a.TotalSpend != b.TotalSpend {
			return a.TotalSpend > b.TotalSpend
		}
		return a.CustomerID < b.CustomerID
	})

	// Cumulative cut points over the population; rounding remainders fall
	// into the lowest tier.
	n := len(ranked)
	goldEnd := cumulativeCut(n, s.cfg.TierCuts.GoldPercent)
	silverEnd := cumulativeCut(n, s.cfg.TierCuts.GoldPercent+s.cfg.TierCuts.SilverPercent)

	for rank, id := range ranked {
		profile := profiles[id]
		switch {
		case rank < goldEnd:
			profile.Tier = domain.TierGold
		case rank < silverEnd:
			profile.Tier = domain.TierSilver
		default:
			profile.Tier = domain.TierBronze
		}
		profiles[id] = profile
	}

	s.logger.Debug("customer segmentation complete",
		slog.Int("customers", n),
		slog.Int("gold", goldEnd),
		slog.Int("silver", silverEnd-goldEnd),
		slog.Int("bronze", n-silverEnd))

	return profiles
}

// AnnotateTiers merges each customer's assigned tier back onto the enriched
// records in place.
func (s *Segmenter) AnnotateTiers(records []domain.EnrichedSaleRecord, profiles map[string]domain.CustomerProfile) {
	for i := range records {
		if profile, ok := profiles[records[i].CustomerID]; ok {
			records[i].CustomerTier = profile.Tier
		}
	}
}

// cumulativeCut converts a cumulative population percentage into a rank
// boundary. The epsilon keeps exact percentages (e.g. 53% of 100) from
// flooring one rank short under floating point.
func cumulativeCut(n int, percent float64) int {
	cut := int(math.Floor(float64(n)*percent/100 + 1e-9))
	if cut > n {
		cut = n
	}
	return cut
}
