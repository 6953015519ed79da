package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugdex-backend/models"
)

func TestVotingWindowDefault(t *testing.T) {
	t.Setenv("VOTING_WINDOW_HOURS", "")
	assert.Equal(t, 72*time.Hour, votingWindow())
}

func TestVotingWindowFromEnv(t *testing.T) {
	t.Setenv("VOTING_WINDOW_HOURS", "24")
	assert.Equal(t, 24*time.Hour, votingWindow())
}

func TestVotingWindowIgnoresGarbage(t *testing.T) {
	t.Setenv("VOTING_WINDOW_HOURS", "not-a-number")
	assert.Equal(t, 72*time.Hour, votingWindow())

	t.Setenv("VOTING_WINDOW_HOURS", "-5")
	assert.Equal(t, 72*time.Hour, votingWindow())
}

func bindMintRequest(t *testing.T, body string) (models.RecordMintRequest, error) {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req models.RecordMintRequest
	err := c.ShouldBindJSON(&req)
	return req, err
}

func TestRecordMintRequestAcceptsTokenIDZero(t *testing.T) {
	// The first minted NFT has token id 0; binding must not reject it.
	req, err := bindMintRequest(t, `{"token_id":0,"contract_address":"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC","tx_hash":"0xabc"}`)
	require.NoError(t, err)
	require.NotNil(t, req.TokenID)
	assert.Equal(t, int64(0), *req.TokenID)
}

func TestRecordMintRequestRequiresTokenID(t *testing.T) {
	_, err := bindMintRequest(t, `{"contract_address":"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC","tx_hash":"0xabc"}`)
	assert.Error(t, err)
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", nullIfEmpty("x"))
}
