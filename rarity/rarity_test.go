package rarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBoundaries(t *testing.T) {
	cases := []struct {
		score    int
		expected string
	}{
		{0, Common},
		{1, Uncommon},
		{3, Uncommon},
		{4, Rare},
		{6, Rare},
		{7, Epic},
		{9, Epic},
		{10, Legendary},
		{250, Legendary},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Resolve(tc.score).Name, "score %d", tc.score)
	}
}

func TestResolveClampsNegative(t *testing.T) {
	for _, score := range []int{-1, -5, -100} {
		assert.Equal(t, Resolve(0), Resolve(score), "score %d", score)
	}
}

func TestTiersCoverAllScores(t *testing.T) {
	// Every non-negative score up to well past the open-ended band must land
	// in exactly one tier.
	for score := 0; score <= 50; score++ {
		matches := 0
		for _, tier := range Tiers {
			if score >= tier.MinScore && (tier.MaxScore < 0 || score <= tier.MaxScore) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "score %d", score)
	}
}
