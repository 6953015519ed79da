package handlers

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bugdex-backend/contracts"
	"bugdex-backend/logger"
	"bugdex-backend/models"
)

type UserHandler struct {
	db    *pgxpool.Pool
	token *contracts.BugToken
	nft   *contracts.BugNFT
}

func NewUserHandler(db *pgxpool.Pool, token *contracts.BugToken, nft *contracts.BugNFT) *UserHandler {
	return &UserHandler{
		db:    db,
		token: token,
		nft:   nft,
	}
}

const userColumns = "wallet_address, username, bio, avatar_url, profile_ipfs_hash, created_at, updated_at"

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.WalletAddress,
		&user.Username,
		&user.Bio,
		&user.AvatarURL,
		&user.ProfileIPFSHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// GetProfile returns the stored profile for a wallet, or data: null when the
// wallet has never saved one.
func (h *UserHandler) GetProfile(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		respondError(c, http.StatusBadRequest, "address is required")
		return
	}

	user, err := scanUser(h.db.QueryRow(c,
		"SELECT "+userColumns+" FROM users WHERE wallet_address = $1",
		strings.ToLower(address),
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
			return
		}
		logger.Error("Failed to get profile for %s: %v", address, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// SaveProfile creates the profile on first save and partially updates it
// after; empty fields leave the stored values untouched.
func (h *UserHandler) SaveProfile(c *gin.Context) {
	var req models.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}

	query := `
		INSERT INTO users (wallet_address, username, bio, avatar_url, profile_ipfs_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wallet_address) DO UPDATE SET
			username = COALESCE(EXCLUDED.username, users.username),
			bio = COALESCE(EXCLUDED.bio, users.bio),
			avatar_url = COALESCE(EXCLUDED.avatar_url, users.avatar_url),
			profile_ipfs_hash = COALESCE(EXCLUDED.profile_ipfs_hash, users.profile_ipfs_hash),
			updated_at = NOW()
		RETURNING ` + userColumns

	user, err := scanUser(h.db.QueryRow(c, query,
		strings.ToLower(req.WalletAddress),
		nullIfEmpty(req.Username),
		nullIfEmpty(req.Bio),
		nullIfEmpty(req.AvatarURL),
		nullIfEmpty(req.ProfileIPFSHash),
	))
	if err != nil {
		logger.Error("Failed to save profile for %s: %v", req.WalletAddress, err)
		respondError(c, http.StatusInternalServerError, "Failed to save profile: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// GetCollection returns a wallet's minted uploads plus live chain stats.
// Chain-read failures degrade to "0" rather than failing the request.
func (h *UserHandler) GetCollection(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		respondError(c, http.StatusBadRequest, "Invalid wallet address")
		return
	}

	wallet := strings.ToLower(address)

	query := `
		SELECT ` + uploadColumns + `
		FROM uploads
		WHERE wallet_address = $1 AND token_id IS NOT NULL
		ORDER BY updated_at DESC
	`

	rows, err := h.db.Query(c, query, wallet)
	if err != nil {
		logger.Error("Failed to query collection for %s: %v", wallet, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	minted := []models.Upload{}
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			logger.Error("Failed to scan minted upload: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to scan upload")
			return
		}
		minted = append(minted, upload)
	}

	var stats models.CollectionStats
	err = h.db.QueryRow(c, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE approved),
		       COUNT(*) FILTER (WHERE token_id IS NOT NULL)
		FROM uploads
		WHERE wallet_address = $1
	`, wallet).Scan(&stats.TotalUploads, &stats.ApprovedUploads, &stats.MintedNFTs)
	if err != nil {
		logger.Warn("Failed to compute upload stats for %s: %v", wallet, err)
	}

	bugBalance := "0"
	if balance, err := h.token.BalanceDisplay(c, address); err == nil {
		bugBalance = balance
	} else {
		logger.Warn("Failed to read BUG balance for %s: %v", address, err)
	}

	nftCount := "0"
	if count, err := h.nft.BalanceOf(c, address); err == nil {
		nftCount = count.String()
	} else {
		logger.Warn("Failed to read NFT count for %s: %v", address, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": models.UserCollection{
			WalletAddress: wallet,
			BugBalance:    bugBalance,
			NFTCount:      nftCount,
			MintedUploads: minted,
			Stats:         stats,
		},
	})
}
