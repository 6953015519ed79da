package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackLeaderboardNonEmpty(t *testing.T) {
	entries := fallbackLeaderboard()
	assert.NotEmpty(t, entries)
}

func TestFallbackLeaderboardOrdering(t *testing.T) {
	entries := fallbackLeaderboard()
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].ApprovedUploads, entries[i].ApprovedUploads)
		assert.GreaterOrEqual(t, entries[i-1].TotalNetVotes, entries[i].TotalNetVotes)
	}
}
