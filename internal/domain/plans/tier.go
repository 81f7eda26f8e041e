package plans

// Canonical tiers (single source of truth, seeded by /admin/sync-plans)
const (
	TierBasic   uint = 1
	TierPremium uint = 2
	TierVIP     uint = 3
)

// Seed returns the canonical plan table.
func Seed() []Plan {
	return []Plan{
		{
			ID: TierBasic, Name: "Basic Owner", PriceVND: 0,
			Description:   "FREE plan for new business owners",
			Features:      "List up to 3 businesses\nBasic business profile\nCustomer ratings",
			MaxBusinesses: 3,
		},
		{
			ID: TierPremium, Name: "Premium Owner", PriceVND: 199000,
			Description:   "Advanced features for growing businesses",
			Features:      "List up to 10 businesses\nProduct catalog\nView statistics",
			MaxBusinesses: 10,
		},
		{
			ID: TierVIP, Name: "VIP Owner", PriceVND: 299000,
			Description:   "Premium features for established businesses",
			Features:      "Unlimited businesses\nPriority placement\nFull analytics",
			MaxBusinesses: 0,
		},
	}
}

// BusinessCap returns how many businesses a plan allows (0 = unlimited).
// Priority:
// 1. Explicit MaxBusinesses stored in DB
// 2. Fallback inference by price (legacy safety net)
func BusinessCap(p *Plan) int {
	if p == nil {
		return 0
	}
	if p.MaxBusinesses > 0 {
		return p.MaxBusinesses
	}
	if p.ID == TierVIP || p.PriceVND >= 299000 {
		return 0 // unlimited
	}
	return inferCapFromPrice(p.PriceVND)
}

// inferCapFromPrice exists ONLY as a backward-compatibility fallback.
// Do not rely on this long-term.
func inferCapFromPrice(priceVND float64) int {
	switch {
	case priceVND >= 199000:
		return 10
	default:
		return 3
	}
}
