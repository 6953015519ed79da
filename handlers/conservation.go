package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bugdex-backend/logger"
	"bugdex-backend/models"
	"bugdex-backend/quarter"
)

type ConservationHandler struct {
	db *pgxpool.Pool
}

func NewConservationHandler(db *pgxpool.Pool) *ConservationHandler {
	return &ConservationHandler{db: db}
}

// SubmitVote records one weighted conservation vote per wallet per quarter.
// The balance is client-reported; the service does not verify it on-chain.
func (h *ConservationHandler) SubmitVote(c *gin.Context) {
	var req models.ConservationVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}

	if req.BugBalance <= 0 {
		respondError(c, http.StatusBadRequest, "Must hold BUG tokens to vote")
		return
	}

	wallet := strings.ToLower(req.VoterWallet)

	// Fast-path duplicate check; the unique constraint on
	// (voter_wallet, quarter) is the real guard.
	var alreadyVoted bool
	err := h.db.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM conservation_votes WHERE voter_wallet = $1 AND quarter = $2)", wallet, req.Quarter).Scan(&alreadyVoted)
	if err != nil {
		logger.Error("Failed to check existing conservation vote for %s: %v", wallet, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if alreadyVoted {
		respondError(c, http.StatusBadRequest, "You have already voted this quarter")
		return
	}

	var orgExists bool
	err = h.db.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM conservation_orgs WHERE id = $1 AND verified = true)", req.OrgID).Scan(&orgExists)
	if err != nil {
		logger.Error("Failed to check organization %d: %v", req.OrgID, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if !orgExists {
		respondError(c, http.StatusBadRequest, "Invalid organization")
		return
	}

	query := `
		INSERT INTO conservation_votes (id, voter_wallet, org_id, bug_balance, quarter)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var voteID uuid.UUID
	err = h.db.QueryRow(c, query, uuid.New(), wallet, req.OrgID, req.BugBalance, req.Quarter).Scan(&voteID)
	if err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusBadRequest, "You have already voted this quarter")
			return
		}
		logger.Error("Failed to insert conservation vote for %s: %v", wallet, err)
		respondError(c, http.StatusInternalServerError, "Failed to record vote: "+err.Error())
		return
	}

	logger.Info("Conservation vote recorded: wallet=%s org=%d quarter=%s weight=%.2f", wallet, req.OrgID, req.Quarter, req.BugBalance)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":      voteID,
			"message": "Vote recorded for " + req.Quarter,
		},
	})
}

// HasVoted reports whether a wallet already voted in a quarter (defaults to
// the current one).
func (h *ConservationHandler) HasVoted(c *gin.Context) {
	wallet := c.Query("wallet")
	if wallet == "" {
		respondError(c, http.StatusBadRequest, "wallet is required")
		return
	}

	q := c.Query("quarter")
	if q == "" {
		q = quarter.Current()
	}

	var hasVoted bool
	err := h.db.QueryRow(c, "SELECT EXISTS(SELECT 1 FROM conservation_votes WHERE voter_wallet = $1 AND quarter = $2)", strings.ToLower(wallet), q).Scan(&hasVoted)
	if err != nil {
		logger.Error("Failed to check has-voted for %s: %v", wallet, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "hasVoted": hasVoted})
}

// GetOrganizations returns the current-quarter ranking of verified
// organizations plus the quarter's donation total.
func (h *ConservationHandler) GetOrganizations(c *gin.Context) {
	currentQuarter := quarter.Current()

	query := `
		SELECT o.id, o.name, o.category,
		       COUNT(v.id) AS vote_count,
		       COALESCE(SUM(v.bug_balance), 0) AS weighted_votes
		FROM conservation_orgs o
		LEFT JOIN conservation_votes v ON v.org_id = o.id AND v.quarter = $1
		WHERE o.verified = true
		GROUP BY o.id, o.name, o.category
		ORDER BY weighted_votes DESC, vote_count DESC
	`

	rows, err := h.db.Query(c, query, currentQuarter)
	if err != nil {
		logger.Error("Failed to query organization ranking: %v", err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	organizations := []models.OrgRanking{}
	for rows.Next() {
		var org models.OrgRanking
		if err := rows.Scan(&org.ID, &org.Name, &org.Category, &org.VoteCount, &org.WeightedVotes); err != nil {
			logger.Error("Failed to scan organization row: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to scan organization")
			return
		}
		organizations = append(organizations, org)
	}

	computePercentages(organizations)

	var totalDonated float64
	err = h.db.QueryRow(c, "SELECT COALESCE(SUM(amount), 0) FROM conservation_donations WHERE quarter = $1", currentQuarter).Scan(&totalDonated)
	if err != nil {
		logger.Warn("Failed to sum donations for %s: %v", currentQuarter, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": models.OrgRankingResponse{
			Organizations:  organizations,
			TotalDonated:   totalDonated,
			CurrentQuarter: currentQuarter,
		},
	})
}

// computePercentages fills each organization's share of total weighted votes.
// A zero total yields "0.0" everywhere instead of NaN.
func computePercentages(orgs []models.OrgRanking) {
	var total float64
	for _, org := range orgs {
		total += org.WeightedVotes
	}

	for i := range orgs {
		if total > 0 {
			orgs[i].Percentage = fmt.Sprintf("%.1f", orgs[i].WeightedVotes/total*100)
		} else {
			orgs[i].Percentage = "0.0"
		}
	}
}

// CreateOrganization is the admin seeding path for conservation orgs.
func (h *ConservationHandler) CreateOrganization(c *gin.Context) {
	var req models.CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	query := `
		INSERT INTO conservation_orgs (name, category, verified)
		VALUES ($1, $2, $3)
		RETURNING id, name, category, verified, created_at
	`

	var org models.ConservationOrg
	err := h.db.QueryRow(c, query, req.Name, req.Category, req.Verified).Scan(
		&org.ID,
		&org.Name,
		&org.Category,
		&org.Verified,
		&org.CreatedAt,
	)
	if err != nil {
		logger.Error("Failed to create organization %s: %v", req.Name, err)
		respondError(c, http.StatusInternalServerError, "Failed to create organization: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": org})
}

// RecordDonation appends to the quarterly payout ledger.
func (h *ConservationHandler) RecordDonation(c *gin.Context) {
	var req models.RecordDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if req.Quarter == "" {
		req.Quarter = quarter.Current()
	}

	var donationID int64
	err := h.db.QueryRow(c,
		"INSERT INTO conservation_donations (quarter, amount, tx_hash) VALUES ($1, $2, $3) RETURNING id",
		req.Quarter, req.Amount, nullIfEmpty(req.TxHash),
	).Scan(&donationID)
	if err != nil {
		logger.Error("Failed to record donation for %s: %v", req.Quarter, err)
		respondError(c, http.StatusInternalServerError, "Failed to record donation: "+err.Error())
		return
	}

	logger.Info("Donation recorded: quarter=%s amount=%.2f", req.Quarter, req.Amount)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"id": donationID, "quarter": req.Quarter},
	})
}

// GetDonations lists the ledger for a quarter (defaults to current).
func (h *ConservationHandler) GetDonations(c *gin.Context) {
	q := c.Query("quarter")
	if q == "" {
		q = quarter.Current()
	}

	rows, err := h.db.Query(c, "SELECT quarter, amount, tx_hash, created_at FROM conservation_donations WHERE quarter = $1 ORDER BY created_at DESC", q)
	if err != nil {
		logger.Error("Failed to query donations for %s: %v", q, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	type donation struct {
		Quarter   string    `json:"quarter"`
		Amount    float64   `json:"amount"`
		TxHash    *string   `json:"tx_hash"`
		CreatedAt time.Time `json:"created_at"`
	}

	var donations []donation
	var total float64
	for rows.Next() {
		var d donation
		if err := rows.Scan(&d.Quarter, &d.Amount, &d.TxHash, &d.CreatedAt); err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to scan donation")
			return
		}
		total += d.Amount
		donations = append(donations, d)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"donations": donations,
			"total":     total,
			"quarter":   q,
		},
	})
}
