package handlers

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugdex-backend/models"
)

func TestComputePercentagesSumToHundred(t *testing.T) {
	orgs := []models.OrgRanking{
		{ID: 1, WeightedVotes: 500},
		{ID: 2, WeightedVotes: 300},
		{ID: 3, WeightedVotes: 200},
	}

	computePercentages(orgs)

	assert.Equal(t, "50.0", orgs[0].Percentage)
	assert.Equal(t, "30.0", orgs[1].Percentage)
	assert.Equal(t, "20.0", orgs[2].Percentage)

	var sum float64
	for _, org := range orgs {
		pct, err := strconv.ParseFloat(org.Percentage, 64)
		require.NoError(t, err)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.2)
}

func TestComputePercentagesZeroTotal(t *testing.T) {
	orgs := []models.OrgRanking{
		{ID: 1, WeightedVotes: 0},
		{ID: 2, WeightedVotes: 0},
	}

	computePercentages(orgs)

	for _, org := range orgs {
		assert.Equal(t, "0.0", org.Percentage)
	}
}

func TestComputePercentagesEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		computePercentages(nil)
		computePercentages([]models.OrgRanking{})
	})
}

func TestEmptyRankingSerializesAsEmptyArray(t *testing.T) {
	// No verified orgs must still yield organizations: [], not null.
	resp := models.OrgRankingResponse{
		Organizations:  []models.OrgRanking{},
		CurrentQuarter: "2026-Q3",
	}

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"organizations":[]`)
}

func TestComputePercentagesSingleOrg(t *testing.T) {
	orgs := []models.OrgRanking{{ID: 1, WeightedVotes: 42.5}}
	computePercentages(orgs)
	assert.Equal(t, "100.0", orgs[0].Percentage)
}
