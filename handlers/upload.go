package handlers

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bugdex-backend/contracts"
	"bugdex-backend/logger"
	"bugdex-backend/models"
)

type UploadHandler struct {
	db      *pgxpool.Pool
	staking *contracts.BugStaking
}

func NewUploadHandler(db *pgxpool.Pool, staking *contracts.BugStaking) *UploadHandler {
	return &UploadHandler{
		db:      db,
		staking: staking,
	}
}

const uploadColumns = `id, wallet_address, image_cid, metadata_cid, latitude, longitude, bug_metadata,
	voting_status, votes_for, votes_against, voting_deadline, approved, rarity_tier,
	token_id, contract_address, mint_tx_hash, created_at, updated_at`

func scanUpload(row pgx.Row) (models.Upload, error) {
	var u models.Upload
	err := row.Scan(
		&u.ID,
		&u.WalletAddress,
		&u.ImageCID,
		&u.MetadataCID,
		&u.Latitude,
		&u.Longitude,
		&u.BugMetadata,
		&u.VotingStatus,
		&u.VotesFor,
		&u.VotesAgainst,
		&u.VotingDeadline,
		&u.Approved,
		&u.RarityTier,
		&u.TokenID,
		&u.ContractAddress,
		&u.MintTxHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// votingWindow returns how long a submission stays open for voting.
func votingWindow() time.Duration {
	hours := 72
	if v := os.Getenv("VOTING_WINDOW_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}

// CreateUpload stores a new insect submission with IPFS content identifiers
// already pinned by the client.
func (h *UploadHandler) CreateUpload(c *gin.Context) {
	var req models.CreateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}

	query := `
		INSERT INTO uploads (id, wallet_address, image_cid, metadata_cid, latitude, longitude, bug_metadata, voting_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + uploadColumns

	upload, err := scanUpload(h.db.QueryRow(c, query,
		uuid.New(),
		strings.ToLower(req.WalletAddress),
		req.ImageCID,
		nullIfEmpty(req.MetadataCID),
		req.Latitude,
		req.Longitude,
		nullIfEmpty(req.BugMetadata),
		models.VotingNotSubmitted,
	))
	if err != nil {
		logger.Error("Failed to create upload for %s: %v", req.WalletAddress, err)
		respondError(c, http.StatusInternalServerError, "Failed to create upload: "+err.Error())
		return
	}

	logger.Info("Upload created: id=%s wallet=%s image=%s", upload.ID, upload.WalletAddress, upload.ImageCID)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": upload})
}

// GetUpload fetches one submission by id.
func (h *UploadHandler) GetUpload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid upload id")
		return
	}

	upload, err := scanUpload(h.db.QueryRow(c, "SELECT "+uploadColumns+" FROM uploads WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Upload not found")
			return
		}
		logger.Error("Failed to get upload %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": upload})
}

// ListUploads returns submissions newest first, optionally filtered by
// voting status and owner wallet.
func (h *UploadHandler) ListUploads(c *gin.Context) {
	query := "SELECT " + uploadColumns + " FROM uploads WHERE 1=1"
	args := []interface{}{}

	if status := c.Query("status"); status != "" {
		args = append(args, status)
		query += " AND voting_status = $" + strconv.Itoa(len(args))
	}

	if wallet := c.Query("wallet"); wallet != "" {
		args = append(args, strings.ToLower(wallet))
		query += " AND wallet_address = $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY created_at DESC"

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	args = append(args, limit)
	query += " LIMIT $" + strconv.Itoa(len(args))

	rows, err := h.db.Query(c, query, args...)
	if err != nil {
		logger.Error("Failed to list uploads: %v", err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	uploads := []models.Upload{}
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			logger.Error("Failed to scan upload row: %v", err)
			respondError(c, http.StatusInternalServerError, "Failed to scan upload")
			return
		}
		uploads = append(uploads, upload)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": uploads, "count": len(uploads)})
}

// SubmitForVoting moves an upload from not_submitted to pending and starts
// the voting clock. When the staking contract is reachable the caller's
// submission stake is checked against the contract minimum; an unreachable
// contract degrades to accepting the submission.
func (h *UploadHandler) SubmitForVoting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid upload id")
		return
	}

	var status, wallet string
	err = h.db.QueryRow(c, "SELECT voting_status, wallet_address FROM uploads WHERE id = $1", id).Scan(&status, &wallet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Upload not found")
			return
		}
		logger.Error("Failed to load upload %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.VotingNotSubmitted {
		respondError(c, http.StatusBadRequest, "Upload has already been submitted for voting")
		return
	}

	if h.staking != nil {
		var submissionID [32]byte
		copy(submissionID[:], id[:])

		stake, stakeErr := h.staking.StakeForSubmission(c, wallet, submissionID)
		minimum, minErr := h.staking.MinimumStake(c)
		if stakeErr == nil && minErr == nil {
			if stake.Cmp(minimum) < 0 {
				respondError(c, http.StatusBadRequest, "Submission stake below contract minimum")
				return
			}
		} else {
			logger.Warn("Skipping stake check for upload %s: stake=%v minimum=%v", id, stakeErr, minErr)
		}
	}

	deadline := time.Now().Add(votingWindow())

	query := `
		UPDATE uploads
		SET voting_status = $1, voting_deadline = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + uploadColumns

	upload, err := scanUpload(h.db.QueryRow(c, query, models.VotingPending, deadline, id))
	if err != nil {
		logger.Error("Failed to submit upload %s for voting: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to submit for voting")
		return
	}

	logger.Info("Upload %s submitted for voting, deadline %s", id, deadline.Format(time.RFC3339))

	c.JSON(http.StatusOK, gin.H{"success": true, "data": upload})
}

// CastVote records one for/against vote per (upload, voter) and bumps the
// matching tally.
func (h *UploadHandler) CastVote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid upload id")
		return
	}

	var req models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}

	var status string
	var deadline *time.Time
	err = h.db.QueryRow(c, "SELECT voting_status, voting_deadline FROM uploads WHERE id = $1", id).Scan(&status, &deadline)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Upload not found")
			return
		}
		logger.Error("Failed to load upload %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.VotingPending {
		respondError(c, http.StatusBadRequest, "Voting is not open for this upload")
		return
	}

	if deadline != nil && time.Now().After(*deadline) {
		respondError(c, http.StatusBadRequest, "Voting deadline has passed")
		return
	}

	support := *req.Support
	_, err = h.db.Exec(c,
		"INSERT INTO votes (id, upload_id, voter_address, support) VALUES ($1, $2, $3, $4)",
		uuid.New(), id, strings.ToLower(req.VoterAddress), support,
	)
	if err != nil {
		if isUniqueViolation(err) {
			respondError(c, http.StatusBadRequest, "You have already voted on this upload")
			return
		}
		logger.Error("Failed to insert vote on %s by %s: %v", id, req.VoterAddress, err)
		respondError(c, http.StatusInternalServerError, "Failed to record vote: "+err.Error())
		return
	}

	tallyColumn := "votes_against"
	if support {
		tallyColumn = "votes_for"
	}

	var votesFor, votesAgainst int
	err = h.db.QueryRow(c,
		"UPDATE uploads SET "+tallyColumn+" = "+tallyColumn+" + 1, updated_at = NOW() WHERE id = $1 RETURNING votes_for, votes_against",
		id,
	).Scan(&votesFor, &votesAgainst)
	if err != nil {
		logger.Error("Failed to update tally for %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to update tally")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"upload_id":     id,
			"votes_for":     votesFor,
			"votes_against": votesAgainst,
		},
	})
}

// RecordMint links a resolved, approved upload to the NFT the client minted.
func (h *UploadHandler) RecordMint(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid upload id")
		return
	}

	var req models.RecordMintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}

	var status string
	var approved bool
	err = h.db.QueryRow(c, "SELECT voting_status, approved FROM uploads WHERE id = $1", id).Scan(&status, &approved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Upload not found")
			return
		}
		logger.Error("Failed to load upload %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.VotingResolved || !approved {
		respondError(c, http.StatusBadRequest, "Upload is not approved for minting")
		return
	}

	query := `
		UPDATE uploads
		SET token_id = $1, contract_address = $2, mint_tx_hash = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + uploadColumns

	upload, err := scanUpload(h.db.QueryRow(c, query, *req.TokenID, strings.ToLower(req.ContractAddress), req.TxHash, id))
	if err != nil {
		logger.Error("Failed to record mint for %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Failed to record mint")
		return
	}

	logger.Info("Mint recorded: upload=%s token=%d tx=%s", id, *req.TokenID, req.TxHash)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": upload})
}
