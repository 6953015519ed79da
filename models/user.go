package models

import (
	"time"
)

// User is a wallet-keyed profile. Wallet addresses are stored lower-cased so
// lookups are case-insensitive.
type User struct {
	WalletAddress   string    `json:"wallet_address" db:"wallet_address"`
	Username        *string   `json:"username" db:"username"`
	Bio             *string   `json:"bio" db:"bio"`
	AvatarURL       *string   `json:"avatar_url" db:"avatar_url"`
	ProfileIPFSHash *string   `json:"profile_ipfs_hash" db:"profile_ipfs_hash"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type SaveProfileRequest struct {
	WalletAddress   string `json:"wallet_address" binding:"required"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	AvatarURL       string `json:"avatar_url"`
	ProfileIPFSHash string `json:"profile_ipfs_hash"`
}

// UserCollection is the enriched view returned by GET /api/user/:address.
type UserCollection struct {
	WalletAddress string          `json:"wallet_address"`
	BugBalance    string          `json:"bug_balance"`
	NFTCount      string          `json:"nft_count"`
	MintedUploads []Upload        `json:"minted_uploads"`
	Stats         CollectionStats `json:"stats"`
}

type CollectionStats struct {
	TotalUploads    int `json:"total_uploads"`
	ApprovedUploads int `json:"approved_uploads"`
	MintedNFTs      int `json:"minted_nfts"`
}
