package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bugdex-backend/rarity"
)

func TestDecideApproval(t *testing.T) {
	approved, _ := Decide(5, 2)
	assert.True(t, approved)

	approved, _ = Decide(2, 5)
	assert.False(t, approved)

	// Ties are not approved.
	approved, _ = Decide(3, 3)
	assert.False(t, approved)
}

func TestDecideTier(t *testing.T) {
	cases := []struct {
		votesFor, votesAgainst int
		tier                   string
	}{
		{0, 0, rarity.Common},
		{2, 0, rarity.Uncommon},
		{5, 1, rarity.Rare},
		{10, 2, rarity.Epic},
		{15, 3, rarity.Legendary},
		{1, 8, rarity.Common}, // negative net score clamps
	}

	for _, tc := range cases {
		_, tier := Decide(tc.votesFor, tc.votesAgainst)
		assert.Equal(t, tc.tier, tier, "%d for / %d against", tc.votesFor, tc.votesAgainst)
	}
}
