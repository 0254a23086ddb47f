package domain

// Tier is an ordinal customer classification assigned by relative spend rank.
type Tier string

const (
	TierGold   Tier = "Gold"
	TierSilver Tier = "Silver"
	TierBronze Tier = "Bronze"
	// TierUnknown marks records whose customer never made it through
	// segmentation. It should not appear in normal pipeline output.
	TierUnknown Tier = "Unknown"
)

// Tiers lists the assignable tiers from highest to lowest spend rank.
func Tiers() []Tier {
	return []Tier{TierGold, TierSilver, TierBronze}
}

// IsValid reports whether the tier is one of the assignable values.
func (t Tier) IsValid() bool {
	switch t {
	case TierGold, TierSilver, TierBronze:
		return true
	}
	return false
}

// CustomerProfile aggregates a single customer's activity across one batch.
// Profiles are rebuilt from scratch on every pipeline run and are never
// mutated incrementally.
type CustomerProfile struct {
	CustomerID  string  `json:"customer_id" validate:"required"`
	TotalSpend  float64 `json:"total_spend" validate:"min=0"`
	RecordCount int     `json:"record_count" validate:"min=1"`
	Tier        Tier    `json:"tier" validate:"required"`
}
