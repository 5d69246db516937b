package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/queue"
	"github.com/riskibarqy/draft-engine/internal/infrastructure/repository/memory"
)

func expiredClockFixture() (*draftFixture, time.Time) {
	started := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	fx := newDraftFixture(draft.StatusInProgress, timePtr(started))
	// Fixture time limit is 30s; a minute later the timer is long gone.
	return fx, started.Add(time.Minute)
}

func TestAutoPickService_QueueFirstSelection(t *testing.T) {
	fx, now := expiredClockFixture()
	service := fx.autoPickService(fx.pickService())
	service.now = func() time.Time { return now }

	// ply-one was picked in the meantime; the queue walk must skip it and
	// take the next still-available entry.
	_, err := fx.players.MarkPicked(t.Context(), "ply-one", captainBetaID, 99)
	require.NoError(t, err)

	for i, playerID := range []string{"ply-one", "ply-three"} {
		_, err := fx.queues.Append(t.Context(), queue.Entry{
			ID:        "entry-" + string(rune('a'+i)),
			CaptainID: captainAlphaID,
			PlayerID:  playerID,
			CreatedAt: fixtureCreatedAt,
		})
		require.NoError(t, err)
	}

	outcome, err := service.AutoPick(t.Context(), AutoPickInput{DraftID: fixtureDraftID})
	require.NoError(t, err)
	require.False(t, outcome.AlreadyPicked)
	require.False(t, outcome.TimerNotExpired)
	require.Equal(t, "ply-three", outcome.Pick.PlayerID)
	require.Equal(t, captainAlphaID, outcome.Pick.CaptainID)
	require.True(t, outcome.Pick.IsAutoPick)

	entry, ok := fx.auditor.last()
	require.True(t, ok)
	require.Equal(t, "auto_pick", entry.Action)
	require.Equal(t, audit.ActorSystem, entry.ActorType)
	require.Equal(t, true, entry.Metadata["from_queue"])
}

func TestAutoPickService_RandomFallback(t *testing.T) {
	fx, now := expiredClockFixture()
	service := fx.autoPickService(fx.pickService())
	service.now = func() time.Time { return now }

	// Empty queue and a single available player left: the fallback has
	// exactly one choice.
	for _, id := range []string{"ply-two", "ply-three", "ply-four"} {
		_, err := fx.players.MarkPicked(t.Context(), id, captainBetaID, 99)
		require.NoError(t, err)
	}

	var sawN int
	service.randIntn = func(n int) int {
		sawN = n
		return 0
	}

	outcome, err := service.AutoPick(t.Context(), AutoPickInput{DraftID: fixtureDraftID})
	require.NoError(t, err)
	require.Equal(t, 1, sawN)
	require.Equal(t, "ply-one", outcome.Pick.PlayerID)

	entry, ok := fx.auditor.last()
	require.True(t, ok)
	require.Equal(t, false, entry.Metadata["from_queue"])
}

func TestAutoPickService_TimerGrace(t *testing.T) {
	started := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		expired bool
	}{
		{name: "well before the limit", elapsed: 10 * time.Second, expired: false},
		{name: "just inside the grace window", elapsed: 27 * time.Second, expired: false},
		{name: "at the grace boundary", elapsed: 28 * time.Second, expired: true},
		{name: "past the limit", elapsed: 31 * time.Second, expired: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newDraftFixture(draft.StatusInProgress, timePtr(started))
			service := fx.autoPickService(fx.pickService())
			service.now = func() time.Time { return started.Add(tc.elapsed) }
			service.randIntn = func(int) int { return 0 }

			outcome, err := service.AutoPick(t.Context(), AutoPickInput{DraftID: fixtureDraftID})
			require.NoError(t, err)

			if tc.expired {
				require.False(t, outcome.TimerNotExpired)
				require.NotZero(t, outcome.Pick.PickNumber)
			} else {
				require.True(t, outcome.TimerNotExpired)
				require.Equal(t, 0, outcome.NextPickIndex)

				d, _, err := fx.drafts.GetByID(t.Context(), fixtureDraftID)
				require.NoError(t, err)
				require.Equal(t, 0, d.CurrentPickIndex)
			}
		})
	}
}

func TestAutoPickService_NoRunningClockIsSoft(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, nil)
	service := fx.autoPickService(fx.pickService())

	outcome, err := service.AutoPick(t.Context(), AutoPickInput{DraftID: fixtureDraftID})
	require.NoError(t, err)
	require.True(t, outcome.TimerNotExpired)
}

func TestAutoPickService_NoTimeLimitAlwaysExpired(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, nil)
	service := fx.autoPickService(fx.pickService())
	service.randIntn = func(int) int { return 0 }

	// Untimed drafts treat every auto-pick request as ripe.
	d, _, err := fx.drafts.GetByID(t.Context(), fixtureDraftID)
	require.NoError(t, err)
	d.TimeLimitSeconds = 0
	untimed := memory.NewDraftRepository([]draft.Draft{d})
	service.drafts = untimed
	service.pickSvc.drafts = untimed

	outcome, err := service.AutoPick(t.Context(), AutoPickInput{DraftID: fixtureDraftID})
	require.NoError(t, err)
	require.False(t, outcome.TimerNotExpired)
	require.NotZero(t, outcome.Pick.PickNumber)
}

func TestAutoPickService_AutoModeBypassesTimer(t *testing.T) {
	started := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	fx := newDraftFixture(draft.StatusInProgress, timePtr(started))
	service := fx.autoPickService(fx.pickService())
	// One second into the turn, far from expiry.
	service.now = func() time.Time { return started.Add(time.Second) }
	service.randIntn = func(int) int { return 0 }

	require.NoError(t, fx.captains.SetAutoPick(t.Context(), captainAlphaID, true))

	outcome, err := service.AutoPick(t.Context(), AutoPickInput{DraftID: fixtureDraftID})
	require.NoError(t, err)
	require.False(t, outcome.TimerNotExpired)
	require.Equal(t, captainAlphaID, outcome.Pick.CaptainID)
}

func TestAutoPickService_StaleExpectedIndexIsSoft(t *testing.T) {
	fx, now := expiredClockFixture()
	service := fx.autoPickService(fx.pickService())
	service.now = func() time.Time { return now }

	stale := 3
	outcome, err := service.AutoPick(t.Context(), AutoPickInput{
		DraftID:           fixtureDraftID,
		ExpectedPickIndex: &stale,
	})
	require.NoError(t, err)
	require.True(t, outcome.AlreadyPicked)
	require.Equal(t, 0, outcome.NextPickIndex)
}

func TestAutoPickService_WrongStatus(t *testing.T) {
	fx := newDraftFixture(draft.StatusPaused, nil)
	service := fx.autoPickService(fx.pickService())

	_, err := service.AutoPick(t.Context(), AutoPickInput{DraftID: fixtureDraftID})
	require.ErrorIs(t, err, ErrWrongDraftStatus)
}

func TestAutoPickService_CredentialedCallerBecomesActor(t *testing.T) {
	fx, now := expiredClockFixture()
	service := fx.autoPickService(fx.pickService())
	service.now = func() time.Time { return now }
	service.randIntn = func(int) int { return 0 }

	_, err := service.AutoPick(t.Context(), AutoPickInput{
		DraftID:       fixtureDraftID,
		OwnerIdentity: fixtureOwnerID,
	})
	require.NoError(t, err)

	entry, ok := fx.auditor.last()
	require.True(t, ok)
	require.Equal(t, audit.ActorOwner, entry.ActorType)
	require.Equal(t, fixtureOwnerID, entry.ActorID)
}

func TestAutoPickService_SetAutoPickEnabled(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.autoPickService(fx.pickService())

	// A captain flips their own flag by token.
	err := service.SetAutoPickEnabled(t.Context(), SetAutoPickInput{
		DraftID:      fixtureDraftID,
		CaptainID:    captainBetaID,
		Enabled:      true,
		CaptainToken: captainBetaToken,
	})
	require.NoError(t, err)

	c, exists, err := fx.captains.GetByID(t.Context(), captainBetaID)
	require.NoError(t, err)
	require.True(t, exists)
	require.True(t, c.AutoPickEnabled)

	// The owner may flip anyone's flag.
	err = service.SetAutoPickEnabled(t.Context(), SetAutoPickInput{
		DraftID:       fixtureDraftID,
		CaptainID:     captainBetaID,
		Enabled:       false,
		OwnerIdentity: fixtureOwnerID,
	})
	require.NoError(t, err)

	c, _, err = fx.captains.GetByID(t.Context(), captainBetaID)
	require.NoError(t, err)
	require.False(t, c.AutoPickEnabled)

	// A captain's token never works against another captain's flag.
	err = service.SetAutoPickEnabled(t.Context(), SetAutoPickInput{
		DraftID:      fixtureDraftID,
		CaptainID:    captainBetaID,
		Enabled:      true,
		CaptainToken: captainAlphaToken,
	})
	require.ErrorIs(t, err, ErrUnauthorized)
}
