package enrich

const (
	TierSuperPlatinum = "Super Platinum"
	TierPlatinum      = "Platinum"
	TierDiamond       = "Diamond"
	TierGold          = "Gold"
)

// Tier maps a USD revenue amount to its bracket label. Boundaries: the
// top bracket is strictly above 1B, the rest are inclusive.
func Tier(amountUSD float64) string {
	switch {
	case amountUSD > 1_000_000_000:
		return TierSuperPlatinum
	case amountUSD >= 500_000_000:
		return TierPlatinum
	case amountUSD >= 100_000_000:
		return TierDiamond
	default:
		return TierGold
	}
}
