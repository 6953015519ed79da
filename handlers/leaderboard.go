package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"bugdex-backend/logger"
	"bugdex-backend/models"
)

type LeaderboardHandler struct {
	db *pgxpool.Pool
}

func NewLeaderboardHandler(db *pgxpool.Pool) *LeaderboardHandler {
	return &LeaderboardHandler{db: db}
}

// GetLeaderboard ranks wallets by approved uploads, ties broken by total net
// votes. Two-tier data source: when the database is unavailable a static
// fallback board is served with source=fallback so the page stays renderable.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	query := `
		SELECT wallet_address,
		       COUNT(*) FILTER (WHERE approved) AS approved_uploads,
		       COALESCE(SUM(votes_for - votes_against), 0) AS total_net_votes,
		       COUNT(*) FILTER (WHERE token_id IS NOT NULL) AS minted_nfts
		FROM uploads
		WHERE voting_status = 'resolved'
		GROUP BY wallet_address
		ORDER BY approved_uploads DESC, total_net_votes DESC
		LIMIT $1
	`

	rows, err := h.db.Query(c, query, limit)
	if err != nil {
		logger.Error("Leaderboard query failed, serving fallback: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"source":  "fallback",
			"data":    fallbackLeaderboard(),
		})
		return
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.WalletAddress, &entry.ApprovedUploads, &entry.TotalNetVotes, &entry.MintedNFTs); err != nil {
			logger.Error("Leaderboard scan failed, serving fallback: %v", err)
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"source":  "fallback",
				"data":    fallbackLeaderboard(),
			})
			return
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"source":  "database",
		"data":    entries,
	})
}

// fallbackLeaderboard is the static board served when the database is down.
func fallbackLeaderboard() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{WalletAddress: "0x8a3b...c2f1", ApprovedUploads: 12, TotalNetVotes: 87, MintedNFTs: 9},
		{WalletAddress: "0x41de...9a07", ApprovedUploads: 9, TotalNetVotes: 64, MintedNFTs: 7},
		{WalletAddress: "0xb7c2...1e55", ApprovedUploads: 7, TotalNetVotes: 51, MintedNFTs: 5},
		{WalletAddress: "0x09fa...77b3", ApprovedUploads: 5, TotalNetVotes: 33, MintedNFTs: 3},
		{WalletAddress: "0xd410...06c8", ApprovedUploads: 3, TotalNetVotes: 18, MintedNFTs: 2},
	}
}
