package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/draft"
)

func TestDraftQueryService_GetState(t *testing.T) {
	started := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	fx := newDraftFixture(draft.StatusInProgress, timePtr(started))
	service := NewDraftQueryService(fx.drafts, fx.captains, fx.players, fx.picks)

	state, err := service.GetState(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}

	if state.CurrentCaptainID != captainAlphaID {
		t.Fatalf("expected %s on the clock, got %s", captainAlphaID, state.CurrentCaptainID)
	}
	if state.AvailableCount != 4 {
		t.Fatalf("expected 4 available players, got %d", state.AvailableCount)
	}
	if len(state.Captains) != 2 {
		t.Fatalf("expected 2 captains, got %d", len(state.Captains))
	}

	wantDeadline := started.Add(30 * time.Second)
	if state.PickDeadline == nil || !state.PickDeadline.Equal(wantDeadline) {
		t.Fatalf("expected deadline %v, got %v", wantDeadline, state.PickDeadline)
	}
}

func TestDraftQueryService_GetState_NoTurnInfoOutsideInProgress(t *testing.T) {
	fx := newDraftFixture(draft.StatusNotStarted, nil)
	service := NewDraftQueryService(fx.drafts, fx.captains, fx.players, fx.picks)

	state, err := service.GetState(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.CurrentCaptainID != "" {
		t.Fatalf("no captain should be on the clock, got %s", state.CurrentCaptainID)
	}
	if state.PickDeadline != nil {
		t.Fatalf("no deadline expected, got %v", state.PickDeadline)
	}
}

func TestDraftQueryService_ListAvailablePlayers(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := NewDraftQueryService(fx.drafts, fx.captains, fx.players, fx.picks)

	if _, err := fx.players.MarkPicked(t.Context(), "ply-one", captainAlphaID, 1); err != nil {
		t.Fatalf("mark player: %v", err)
	}

	available, err := service.ListAvailablePlayers(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("list available: %v", err)
	}

	if len(available) != 3 {
		t.Fatalf("expected 3 available players, got %d", len(available))
	}
	for _, p := range available {
		switch p.ID {
		case "ply-one":
			t.Fatal("picked player listed as available")
		case "ply-alpha", "ply-beta":
			t.Fatalf("linked player %s listed as available", p.ID)
		}
	}
}

func TestDraftQueryService_ListPicks(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	pickSvc := fx.pickService()
	service := NewDraftQueryService(fx.drafts, fx.captains, fx.players, fx.picks)

	for _, step := range []struct{ captainID, token, playerID string }{
		{captainAlphaID, captainAlphaToken, "ply-one"},
		{captainBetaID, captainBetaToken, "ply-two"},
	} {
		if _, err := pickSvc.MakePick(t.Context(), MakePickInput{
			DraftID:      fixtureDraftID,
			CaptainID:    step.captainID,
			PlayerID:     step.playerID,
			CaptainToken: step.token,
		}); err != nil {
			t.Fatalf("make pick: %v", err)
		}
	}

	picks, err := service.ListPicks(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picks))
	}
	if picks[0].PickNumber != 1 || picks[1].PickNumber != 2 {
		t.Fatalf("expected picks ordered by pick number, got %+v", picks)
	}
}

func TestDraftQueryService_UnknownDraft(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := NewDraftQueryService(fx.drafts, fx.captains, fx.players, fx.picks)

	if _, err := service.GetState(t.Context(), "draft-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.ListAvailablePlayers(t.Context(), "draft-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.ListPicks(t.Context(), "draft-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
