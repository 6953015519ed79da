package models

import (
	"time"

	"github.com/google/uuid"
)

// ConservationOrg is an organization eligible to receive quarterly votes.
// Only verified orgs appear in rankings or accept votes.
type ConservationOrg struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Verified  bool      `json:"verified" db:"verified"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ConservationVote is immutable once cast; BugBalance is the voter's
// self-reported token balance at cast time and acts as the vote's weight.
type ConservationVote struct {
	ID          uuid.UUID `json:"id" db:"id"`
	VoterWallet string    `json:"voter_wallet" db:"voter_wallet"`
	OrgID       int64     `json:"org_id" db:"org_id"`
	BugBalance  float64   `json:"bug_balance" db:"bug_balance"`
	Quarter     string    `json:"quarter" db:"quarter"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ConservationVoteRequest struct {
	VoterWallet string  `json:"voter_wallet" binding:"required"`
	OrgID       int64   `json:"org_id" binding:"required"`
	BugBalance  float64 `json:"bug_balance"`
	Quarter     string  `json:"quarter" binding:"required"`
}

type CreateOrgRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	Verified bool   `json:"verified"`
}

type RecordDonationRequest struct {
	Quarter string  `json:"quarter"`
	Amount  float64 `json:"amount" binding:"required"`
	TxHash  string  `json:"tx_hash"`
}

// OrgRanking is one row of the current-quarter leaderboard.
type OrgRanking struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	VoteCount     int     `json:"vote_count"`
	WeightedVotes float64 `json:"weighted_votes"`
	Percentage    string  `json:"percentage"`
}

type OrgRankingResponse struct {
	Organizations  []OrgRanking `json:"organizations"`
	TotalDonated   float64      `json:"totalDonated"`
	CurrentQuarter string       `json:"currentQuarter"`
}
