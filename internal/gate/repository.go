package gate

import (
	"context"
	"time"
)

// Repository is the persistence surface the trial use case needs.
type Repository interface {
	// TrialClaimExists reports whether the normalized email already
	// claimed a trial for any club.
	TrialClaimExists(ctx context.Context, emailNormalized string) (bool, error)

	// StartClubTrial records the trial window on the club and the
	// claim in the ledger atomically.
	StartClubTrial(ctx context.Context, clubID uint, emailNormalized string, startedAt, expiresAt time.Time) error
}
