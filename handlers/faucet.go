package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bugdex-backend/logger"
	"bugdex-backend/models"
)

type FaucetHandler struct {
	db *pgxpool.Pool
}

func NewFaucetHandler(db *pgxpool.Pool) *FaucetHandler {
	return &FaucetHandler{db: db}
}

// GetUnlockStatus reports whether a wallet has paid for faucet access.
func (h *FaucetHandler) GetUnlockStatus(c *gin.Context) {
	wallet := c.Query("wallet")
	if wallet == "" {
		respondError(c, http.StatusBadRequest, "wallet is required")
		return
	}

	query := `
		SELECT wallet_address, payment_method, payment_amount, transaction_hash, total_claims, unlocked_at
		FROM faucet_unlocks
		WHERE wallet_address = $1
	`

	var unlock models.FaucetUnlock
	err := h.db.QueryRow(c, query, strings.ToLower(wallet)).Scan(
		&unlock.WalletAddress,
		&unlock.PaymentMethod,
		&unlock.PaymentAmount,
		&unlock.TransactionHash,
		&unlock.TotalClaims,
		&unlock.UnlockedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusOK, gin.H{
				"success":     true,
				"hasUnlocked": false,
				"totalClaims": 0,
			})
			return
		}
		logger.Error("Failed to get unlock status for %s: %v", wallet, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"hasUnlocked":   true,
		"unlockedAt":    unlock.UnlockedAt,
		"paymentMethod": unlock.PaymentMethod,
		"totalClaims":   unlock.TotalClaims,
	})
}

// RecordUnlock upserts a wallet's unlock. Repeat calls refresh only the
// timestamp and transaction hash; the original payment method and amount are
// kept (see DESIGN.md on this asymmetry).
func (h *FaucetHandler) RecordUnlock(c *gin.Context) {
	var req models.RecordUnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}

	query := `
		INSERT INTO faucet_unlocks (wallet_address, payment_method, payment_amount, transaction_hash, unlocked_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (wallet_address) DO UPDATE SET
			unlocked_at = NOW(),
			transaction_hash = EXCLUDED.transaction_hash
	`

	_, err := h.db.Exec(c, query,
		strings.ToLower(req.WalletAddress),
		req.PaymentMethod,
		req.PaymentAmount,
		nullIfEmpty(req.TransactionHash),
	)
	if err != nil {
		logger.Error("Failed to record faucet unlock for %s: %v", req.WalletAddress, err)
		respondError(c, http.StatusInternalServerError, "Failed to record unlock: "+err.Error())
		return
	}

	logger.Info("Faucet unlock recorded: wallet=%s method=%s", strings.ToLower(req.WalletAddress), req.PaymentMethod)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Faucet unlocked",
	})
}
