// Package rarity maps an upload's net vote score to one of five ordered
// rarity tiers.
package rarity

// Tier is a rarity band keyed by an inclusive score range. MaxScore < 0
// marks an open-ended upper bound.
type Tier struct {
	Name     string `json:"name"`
	MinScore int    `json:"min_score"`
	MaxScore int    `json:"max_score"`
}

const (
	Common    = "Common"
	Uncommon  = "Uncommon"
	Rare      = "Rare"
	Epic      = "Epic"
	Legendary = "Legendary"
)

// Tiers is ordered highest threshold first so Resolve can return the first
// matching band.
var Tiers = []Tier{
	{Name: Legendary, MinScore: 10, MaxScore: -1},
	{Name: Epic, MinScore: 7, MaxScore: 9},
	{Name: Rare, MinScore: 4, MaxScore: 6},
	{Name: Uncommon, MinScore: 1, MaxScore: 3},
	{Name: Common, MinScore: 0, MaxScore: 0},
}

// Resolve returns the tier for a net vote score. Negative scores clamp to
// zero before matching.
func Resolve(score int) Tier {
	if score < 0 {
		score = 0
	}

	for _, tier := range Tiers {
		if score >= tier.MinScore && (tier.MaxScore < 0 || score <= tier.MaxScore) {
			return tier
		}
	}

	// Unreachable with the ranges above; the Common band covers the clamped floor.
	return Tiers[len(Tiers)-1]
}
