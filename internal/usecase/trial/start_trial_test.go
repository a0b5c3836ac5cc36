package trial

import (
	"context"
	"testing"
	"time"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/gate"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/httperr"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	claims  map[string]bool
	started []startCall
	err     error
}

type startCall struct {
	clubID     uint
	normalized string
	startedAt  time.Time
	expiresAt  time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{claims: map[string]bool{}}
}

func (f *fakeRepo) TrialClaimExists(_ context.Context, normalized string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.claims[normalized], nil
}

func (f *fakeRepo) StartClubTrial(_ context.Context, clubID uint, normalized string, startedAt, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.claims[normalized] = true
	f.started = append(f.started, startCall{clubID, normalized, startedAt, expiresAt})
	return nil
}

func TestStartTrialOpensWindow(t *testing.T) {
	repo := newFakeRepo()
	uc := NewStartTrial(repo)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	club := &models.Club{ID: 3, Plan: models.PlanFree}

	res, err := uc.Execute(context.Background(), StartTrialInput{
		Club:        club,
		ActorEmail:  "Leader+x@Gmail.com",
		RequestedAt: now,
	})
	require.NoError(t, err)
	assert.True(t, res.Started)
	assert.Equal(t, now, res.StartedAt)
	assert.Equal(t, now.Add(gate.TrialDays*24*time.Hour), res.ExpiresAt)

	require.Len(t, repo.started, 1)
	assert.Equal(t, uint(3), repo.started[0].clubID)
	assert.Equal(t, "leader@gmail.com", repo.started[0].normalized)

	require.NotNil(t, club.TrialStartedAt)
	assert.Equal(t, gate.TrialActive, gate.TrialStatusAt(club, now))
}

func TestStartTrialIdempotent(t *testing.T) {
	repo := newFakeRepo()
	uc := NewStartTrial(repo)
	now := time.Now().UTC()
	started := now.Add(-2 * 24 * time.Hour)
	club := &models.Club{ID: 3, TrialStartedAt: &started}

	res, err := uc.Execute(context.Background(), StartTrialInput{
		Club:        club,
		ActorEmail:  "leader@gmail.com",
		RequestedAt: now,
	})
	require.NoError(t, err)
	assert.False(t, res.Started)
	assert.Equal(t, started, res.StartedAt)
	assert.Empty(t, repo.started)
}

func TestStartTrialBlockedByClaim(t *testing.T) {
	repo := newFakeRepo()
	repo.claims["leader@gmail.com"] = true
	uc := NewStartTrial(repo)

	_, err := uc.Execute(context.Background(), StartTrialInput{
		Club:        &models.Club{ID: 9},
		ActorEmail:  "L.e.a.d.e.r+second@googlemail.com",
		RequestedAt: time.Now(),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "TRIAL_ALREADY_USED_FOR_EMAIL"))
	assert.Empty(t, repo.started)
}

func TestStartTrialSecondClubSameEmailBlocked(t *testing.T) {
	repo := newFakeRepo()
	uc := NewStartTrial(repo)
	now := time.Now().UTC()

	_, err := uc.Execute(context.Background(), StartTrialInput{
		Club:        &models.Club{ID: 1},
		ActorEmail:  "one@exampleclub.org",
		RequestedAt: now,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), StartTrialInput{
		Club:        &models.Club{ID: 2},
		ActorEmail:  " ONE@exampleclub.org ",
		RequestedAt: now,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "TRIAL_ALREADY_USED_FOR_EMAIL"))
}

func TestStartTrialNilClub(t *testing.T) {
	uc := NewStartTrial(newFakeRepo())
	_, err := uc.Execute(context.Background(), StartTrialInput{ActorEmail: "x@y.z", RequestedAt: time.Now()})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "club_not_found"))
}
