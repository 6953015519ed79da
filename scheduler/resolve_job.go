package scheduler

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"bugdex-backend/logger"
	"bugdex-backend/models"
	"bugdex-backend/rarity"
)

// ResolveJob closes voting on uploads whose deadline has passed.
type ResolveJob struct {
	db *pgxpool.Pool
}

func NewResolveJob(db *pgxpool.Pool) *ResolveJob {
	return &ResolveJob{db: db}
}

func (j *ResolveJob) Name() string {
	return "voting-deadline-resolver"
}

// Decide returns the resolution outcome for a finished vote: approval and
// the rarity tier derived from the net score.
func Decide(votesFor, votesAgainst int) (bool, string) {
	approved := votesFor > votesAgainst
	tier := rarity.Resolve(votesFor - votesAgainst)
	return approved, tier.Name
}

// Execute resolves every pending upload past its deadline. Each upload is
// updated with a guard on voting_status so a concurrent run cannot resolve
// the same row twice. The signature takes no arguments so gocron can invoke
// it directly.
func (j *ResolveJob) Execute() {
	ctx := context.Background()

	rows, err := j.db.Query(ctx, `
		SELECT id, votes_for, votes_against
		FROM uploads
		WHERE voting_status = $1 AND voting_deadline < NOW()
	`, models.VotingPending)
	if err != nil {
		logger.Error("Resolver query failed: %v", err)
		return
	}
	defer rows.Close()

	type expired struct {
		id           string
		votesFor     int
		votesAgainst int
	}

	var pending []expired
	for rows.Next() {
		var e expired
		if err := rows.Scan(&e.id, &e.votesFor, &e.votesAgainst); err != nil {
			logger.Error("Resolver scan failed: %v", err)
			return
		}
		pending = append(pending, e)
	}
	rows.Close()

	for _, e := range pending {
		approved, tier := Decide(e.votesFor, e.votesAgainst)

		tag, err := j.db.Exec(ctx, `
			UPDATE uploads
			SET voting_status = $1, approved = $2, rarity_tier = $3, updated_at = NOW()
			WHERE id = $4 AND voting_status = $5
		`, models.VotingResolved, approved, tier, e.id, models.VotingPending)
		if err != nil {
			logger.Error("Failed to resolve upload %s: %v", e.id, err)
			continue
		}

		if tag.RowsAffected() > 0 {
			logger.Info("Upload %s resolved: approved=%t tier=%s (%d for / %d against)",
				e.id, approved, tier, e.votesFor, e.votesAgainst)
		}
	}
}
