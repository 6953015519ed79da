package models

import (
	"time"

	"github.com/google/uuid"
)

// Voting status constants
const (
	VotingNotSubmitted = "not_submitted"
	VotingPending      = "pending"
	VotingResolved     = "resolved"
)

// Upload is an insect submission and its voting/minting lifecycle.
type Upload struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	WalletAddress   string     `json:"wallet_address" db:"wallet_address"`
	ImageCID        string     `json:"image_cid" db:"image_cid"`
	MetadataCID     *string    `json:"metadata_cid" db:"metadata_cid"`
	Latitude        *float64   `json:"latitude" db:"latitude"`
	Longitude       *float64   `json:"longitude" db:"longitude"`
	BugMetadata     *string    `json:"bug_metadata" db:"bug_metadata"`
	VotingStatus    string     `json:"voting_status" db:"voting_status"`
	VotesFor        int        `json:"votes_for" db:"votes_for"`
	VotesAgainst    int        `json:"votes_against" db:"votes_against"`
	VotingDeadline  *time.Time `json:"voting_deadline" db:"voting_deadline"`
	Approved        bool       `json:"approved" db:"approved"`
	RarityTier      *string    `json:"rarity_tier" db:"rarity_tier"`
	TokenID         *int64     `json:"token_id" db:"token_id"`
	ContractAddress *string    `json:"contract_address" db:"contract_address"`
	MintTxHash      *string    `json:"mint_tx_hash" db:"mint_tx_hash"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateUploadRequest struct {
	WalletAddress string  `json:"wallet_address" binding:"required"`
	ImageCID      string  `json:"image_cid" binding:"required"`
	MetadataCID   string  `json:"metadata_cid"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	BugMetadata   string  `json:"bug_metadata"`
}

type CastVoteRequest struct {
	VoterAddress string `json:"voter_address" binding:"required"`
	Support      *bool  `json:"support" binding:"required"`
}

// TokenID is a pointer so a legitimate token id of 0 still passes the
// required check.
type RecordMintRequest struct {
	TokenID         *int64 `json:"token_id" binding:"required"`
	ContractAddress string `json:"contract_address" binding:"required"`
	TxHash          string `json:"tx_hash" binding:"required"`
}

// Vote is one wallet's on-chain-style vote on an upload, unique per
// (upload_id, voter_address).
type Vote struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UploadID     uuid.UUID `json:"upload_id" db:"upload_id"`
	VoterAddress string    `json:"voter_address" db:"voter_address"`
	Support      bool      `json:"support" db:"support"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LeaderboardEntry is one wallet's aggregate standing.
type LeaderboardEntry struct {
	WalletAddress   string `json:"wallet_address"`
	ApprovedUploads int    `json:"approved_uploads"`
	TotalNetVotes   int    `json:"total_net_votes"`
	MintedNFTs      int    `json:"minted_nfts"`
}
