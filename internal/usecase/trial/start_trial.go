package trial

import (
	"context"
	"time"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/gate"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type StartTrialInput struct {
	Club        *models.Club
	ActorEmail  string
	RequestedAt time.Time
}

type StartTrialResult struct {
	Started   bool
	StartedAt time.Time
	ExpiresAt time.Time
}

// ======================================================
// USE CASE
// ======================================================

type StartTrial struct {
	repo gate.Repository
}

func NewStartTrial(repo gate.Repository) *StartTrial {
	return &StartTrial{repo: repo}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute begins the club's one-time trial. Re-running it for a club
// whose trial already started is a no-op that reports the existing
// window; a claim by the same (normalized) email on any club blocks.
func (uc *StartTrial) Execute(
	ctx context.Context,
	in StartTrialInput,
) (*StartTrialResult, error) {

	club := in.Club
	if club == nil {
		return nil, httperr.ErrBusiness("club_not_found")
	}

	// --------------------------------------------------
	// 1. Idempotent when the trial already started
	// --------------------------------------------------
	if club.TrialStartedAt != nil {
		exp := gate.TrialExpiry(club)
		return &StartTrialResult{
			Started:   false,
			StartedAt: *club.TrialStartedAt,
			ExpiresAt: *exp,
		}, nil
	}

	// --------------------------------------------------
	// 2. One trial per email, ever
	// --------------------------------------------------
	normalized := gate.NormalizeEmail(in.ActorEmail)
	claimed, err := uc.repo.TrialClaimExists(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, httperr.ErrBusiness("TRIAL_ALREADY_USED_FOR_EMAIL")
	}

	// --------------------------------------------------
	// 3. Open the window and record the claim atomically
	// --------------------------------------------------
	startedAt := in.RequestedAt
	expiresAt := startedAt.Add(gate.TrialDays * 24 * time.Hour)

	if err := uc.repo.StartClubTrial(ctx, club.ID, normalized, startedAt, expiresAt); err != nil {
		return nil, err
	}

	club.TrialStartedAt = &startedAt
	club.TrialExpiresAt = &expiresAt

	return &StartTrialResult{
		Started:   true,
		StartedAt: startedAt,
		ExpiresAt: expiresAt,
	}, nil
}
