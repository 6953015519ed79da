package models

import (
	"time"
)

// FaucetUnlock records a wallet's one-time faucet unlock. Upserts refresh
// only unlocked_at and transaction_hash; the original payment method and
// amount survive repeat calls.
type FaucetUnlock struct {
	WalletAddress   string    `json:"wallet_address" db:"wallet_address"`
	PaymentMethod   string    `json:"payment_method" db:"payment_method"`
	PaymentAmount   *float64  `json:"payment_amount" db:"payment_amount"`
	TransactionHash *string   `json:"transaction_hash" db:"transaction_hash"`
	TotalClaims     int       `json:"total_claims" db:"total_claims"`
	UnlockedAt      time.Time `json:"unlocked_at" db:"unlocked_at"`
}

type RecordUnlockRequest struct {
	WalletAddress   string  `json:"walletAddress" binding:"required"`
	PaymentMethod   string  `json:"paymentMethod" binding:"required"`
	PaymentAmount   float64 `json:"paymentAmount"`
	TransactionHash string  `json:"transactionHash"`
}
