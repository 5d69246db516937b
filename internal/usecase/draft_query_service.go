package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/pick"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
)

// DraftState is the read model for one draft: the live pointer, the captain
// whose turn it is, and the deadline derived from the per-turn clock.
type DraftState struct {
	Draft            draft.Draft
	Captains         []captain.Captain
	CurrentCaptainID string
	PickDeadline     *time.Time
	AvailableCount   int
}

// DraftQueryService serves the read surface. It goes through the same pick
// order resolver and availability filter as the mutating services, so server
// and display-only callers always agree.
type DraftQueryService struct {
	drafts   draft.Repository
	captains captain.Repository
	players  player.Repository
	picks    pick.Repository
}

func NewDraftQueryService(
	drafts draft.Repository,
	captains captain.Repository,
	players player.Repository,
	picks pick.Repository,
) *DraftQueryService {
	return &DraftQueryService{
		drafts:   drafts,
		captains: captains,
		players:  players,
		picks:    picks,
	}
}

func (s *DraftQueryService) GetState(ctx context.Context, draftID string) (DraftState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftQueryService.GetState")
	defer span.End()

	d, exists, err := s.drafts.GetByID(ctx, draftID)
	if err != nil {
		return DraftState{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return DraftState{}, fmt.Errorf("%w: draft %s", ErrNotFound, draftID)
	}

	captains, err := s.captains.ListByDraft(ctx, d.ID)
	if err != nil {
		return DraftState{}, fmt.Errorf("list captains: %w", err)
	}

	state := DraftState{Draft: d, Captains: captains}

	players, err := s.players.ListByDraft(ctx, d.ID)
	if err != nil {
		return DraftState{}, fmt.Errorf("list players: %w", err)
	}
	state.AvailableCount = player.CountAvailable(players, captain.LinkedPlayerIDs(captains))

	if d.Status == draft.StatusInProgress && len(captains) > 0 {
		if err := captain.ValidatePositions(captains); err == nil {
			if id, err := draft.PickerAt(d.Type, captain.OrderedIDs(captains), d.CurrentPickIndex); err == nil {
				state.CurrentCaptainID = id
			}
		}
		if d.CurrentPickStartedAt != nil && d.TimeLimitSeconds > 0 {
			deadline := d.CurrentPickStartedAt.Add(time.Duration(d.TimeLimitSeconds) * time.Second)
			state.PickDeadline = &deadline
		}
	}

	return state, nil
}

func (s *DraftQueryService) ListAvailablePlayers(ctx context.Context, draftID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftQueryService.ListAvailablePlayers")
	defer span.End()

	_, exists, err := s.drafts.GetByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: draft %s", ErrNotFound, draftID)
	}

	players, err := s.players.ListByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	captains, err := s.captains.ListByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("list captains: %w", err)
	}

	return player.FilterAvailable(players, captain.LinkedPlayerIDs(captains)), nil
}

func (s *DraftQueryService) ListPicks(ctx context.Context, draftID string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftQueryService.ListPicks")
	defer span.End()

	_, exists, err := s.drafts.GetByID(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: draft %s", ErrNotFound, draftID)
	}

	picks, err := s.picks.ListByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	return picks, nil
}
