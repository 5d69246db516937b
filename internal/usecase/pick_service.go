package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/pick"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
	"github.com/riskibarqy/draft-engine/internal/domain/queue"
	idgen "github.com/riskibarqy/draft-engine/internal/platform/id"
	"github.com/riskibarqy/draft-engine/internal/platform/logging"
)

// AuditEmitter accepts audit entries for asynchronous recording. Emit never
// blocks and never reports failure to the caller.
type AuditEmitter interface {
	Emit(e audit.Entry)
}

// MakePickInput is the incoming payload for a manual pick.
type MakePickInput struct {
	DraftID       string
	CaptainID     string
	PlayerID      string
	CaptainToken  string
	OwnerIdentity string
	SourceAddr    string
}

// PickOutcome is the result of a pick attempt. AlreadyPicked and
// TimerNotExpired are soft outcomes: concurrent legitimate callers racing for
// the same transition are normal, so they ride back on a successful response
// instead of an error.
type PickOutcome struct {
	AlreadyPicked   bool
	TimerNotExpired bool
	Pick            pick.Pick
	DraftCompleted  bool
	NextPickIndex   int
}

// PickService is the primary state-transition entry point: it records manual
// picks and owns the shared insert -> mark player -> sweep queues ->
// conditionally advance protocol that the auto-pick engine reuses.
type PickService struct {
	drafts     draft.Repository
	captains   captain.Repository
	players    player.Repository
	picks      pick.Repository
	queues     queue.Repository
	authorizer *Authorizer
	auditor    AuditEmitter
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewPickService(
	drafts draft.Repository,
	captains captain.Repository,
	players player.Repository,
	picks pick.Repository,
	queues queue.Repository,
	authorizer *Authorizer,
	auditor AuditEmitter,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PickService{
		drafts:     drafts,
		captains:   captains,
		players:    players,
		picks:      picks,
		queues:     queues,
		authorizer: authorizer,
		auditor:    auditor,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PickService) MakePick(ctx context.Context, input MakePickInput) (PickOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.MakePick")
	defer span.End()

	if input.DraftID == "" || input.CaptainID == "" || input.PlayerID == "" {
		return PickOutcome{}, fmt.Errorf("%w: draft_id, captain_id and player_id are required", ErrInvalidInput)
	}

	d, exists, err := s.drafts.GetByID(ctx, input.DraftID)
	if err != nil {
		return PickOutcome{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return PickOutcome{}, fmt.Errorf("%w: draft %s", ErrNotFound, input.DraftID)
	}
	if d.Status != draft.StatusInProgress {
		return PickOutcome{}, fmt.Errorf("%w: draft is %s", ErrWrongDraftStatus, d.Status)
	}

	actor, err := s.authorizer.Authorize(ctx, d, Credentials{
		CaptainID:     input.CaptainID,
		CaptainToken:  input.CaptainToken,
		OwnerIdentity: input.OwnerIdentity,
	})
	if err != nil {
		return PickOutcome{}, err
	}

	captains, err := s.captains.ListByDraft(ctx, d.ID)
	if err != nil {
		return PickOutcome{}, fmt.Errorf("list captains: %w", err)
	}
	if err := captain.ValidatePositions(captains); err != nil {
		return PickOutcome{}, fmt.Errorf("draft order is inconsistent: %w", err)
	}

	// "Is it your turn" is distinct from "may you call this": re-derive the
	// expected picker from the live pointer and reject mismatches, even for
	// an authenticated captain.
	expectedID, err := draft.PickerAt(d.Type, captain.OrderedIDs(captains), d.CurrentPickIndex)
	if err != nil {
		return PickOutcome{}, fmt.Errorf("resolve picker: %w", err)
	}
	if input.CaptainID != expectedID {
		return PickOutcome{}, fmt.Errorf("%w: captain %s picks at index %d", ErrNotYourTurn, expectedID, d.CurrentPickIndex)
	}
	if actor.Type == audit.ActorCaptain && actor.CaptainID != expectedID {
		return PickOutcome{}, fmt.Errorf("%w: authenticated captain is not the current picker", ErrNotYourTurn)
	}

	outcome, err := s.recordPick(ctx, d, captains, expectedID, input.PlayerID, false)
	if err != nil {
		return PickOutcome{}, err
	}

	if !outcome.AlreadyPicked {
		s.auditor.Emit(audit.Entry{
			Action:    "make_pick",
			DraftID:   d.ID,
			ActorType: actor.Type,
			ActorID:   actor.ID(),
			Metadata: map[string]any{
				"player_id":   input.PlayerID,
				"captain_id":  expectedID,
				"pick_number": outcome.Pick.PickNumber,
				"completed":   outcome.DraftCompleted,
			},
			SourceAddr: input.SourceAddr,
		})
	}

	return outcome, nil
}

// recordPick runs the shared pick protocol against a draft snapshot read at
// the start of the request. Steps, in order: availability check, append the
// pick row (unique pick_number is the first concurrency gate), mark the
// player, best-effort queue sweep, then conditionally advance or complete the
// draft (second gate). Any failure after the append compensates the writes
// already applied.
func (s *PickService) recordPick(ctx context.Context, d draft.Draft, captains []captain.Captain, captainID, playerID string, isAuto bool) (PickOutcome, error) {
	linked := captain.LinkedPlayerIDs(captains)

	target, exists, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return PickOutcome{}, fmt.Errorf("get player: %w", err)
	}
	if !exists || target.DraftID != d.ID {
		return PickOutcome{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	if len(player.FilterAvailable([]player.Player{target}, linked)) == 0 {
		return PickOutcome{}, fmt.Errorf("%w: player %s", ErrPlayerUnavailable, playerID)
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return PickOutcome{}, fmt.Errorf("generate pick id: %w", err)
	}

	pickNumber := d.CurrentPickIndex + 1
	p := pick.Pick{
		ID:         pickID,
		DraftID:    d.ID,
		CaptainID:  captainID,
		PlayerID:   playerID,
		PickNumber: pickNumber,
		IsAutoPick: isAuto,
		CreatedAt:  s.now().UTC(),
	}

	if err := p.ValidateBasic(); err != nil {
		return PickOutcome{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.picks.Insert(ctx, p); err != nil {
		if errorsIsDuplicatePick(err) {
			// Another writer recorded this pick number first. Expected race.
			s.logger.InfoContext(ctx, "pick already recorded by concurrent writer",
				"draft_id", d.ID,
				"pick_number", pickNumber,
			)
			return PickOutcome{AlreadyPicked: true, NextPickIndex: d.CurrentPickIndex}, nil
		}
		return PickOutcome{}, fmt.Errorf("insert pick: %w", err)
	}

	marked, err := s.players.MarkPicked(ctx, playerID, captainID, pickNumber)
	if err != nil || !marked {
		s.compensatePickInsert(ctx, p)
		if err != nil {
			return PickOutcome{}, fmt.Errorf("mark player picked: %w", err)
		}
		return PickOutcome{}, fmt.Errorf("%w: player was picked concurrently", ErrConcurrentUpdate)
	}

	// Queue entries referencing the player are now stale everywhere; sweep
	// them. Losing this write is not a correctness failure.
	if err := s.queues.RemovePlayerEverywhere(ctx, d.ID, playerID); err != nil {
		s.logger.WarnContext(ctx, "queue sweep failed after pick",
			"draft_id", d.ID,
			"player_id", playerID,
			"error", err,
		)
	}

	remaining, err := s.remainingAvailable(ctx, d.ID, linked)
	if err != nil {
		s.compensatePickAndPlayer(ctx, p)
		return PickOutcome{}, fmt.Errorf("count remaining players: %w", err)
	}

	if remaining == 0 {
		ok, err := s.drafts.CompletePick(ctx, d.ID, d.CurrentPickIndex)
		if err != nil {
			s.compensatePickAndPlayer(ctx, p)
			return PickOutcome{}, fmt.Errorf("complete draft: %w", err)
		}
		if !ok {
			s.compensatePickAndPlayer(ctx, p)
			return PickOutcome{}, fmt.Errorf("%w: pointer moved before completion", ErrConcurrentUpdate)
		}

		s.logger.InfoContext(ctx, "draft completed",
			"draft_id", d.ID,
			"final_pick_number", pickNumber,
		)
		return PickOutcome{Pick: p, DraftCompleted: true, NextPickIndex: d.CurrentPickIndex + 1}, nil
	}

	ok, err := s.drafts.AdvancePick(ctx, d.ID, d.CurrentPickIndex, s.now().UTC())
	if err != nil {
		s.compensatePickAndPlayer(ctx, p)
		return PickOutcome{}, fmt.Errorf("advance draft: %w", err)
	}
	if !ok {
		s.compensatePickAndPlayer(ctx, p)
		return PickOutcome{}, fmt.Errorf("%w: pointer moved before advance", ErrConcurrentUpdate)
	}

	s.logger.InfoContext(ctx, "pick recorded",
		"draft_id", d.ID,
		"captain_id", captainID,
		"player_id", playerID,
		"pick_number", pickNumber,
		"auto", isAuto,
	)

	return PickOutcome{Pick: p, NextPickIndex: d.CurrentPickIndex + 1}, nil
}

func (s *PickService) remainingAvailable(ctx context.Context, draftID string, linked []string) (int, error) {
	players, err := s.players.ListByDraft(ctx, draftID)
	if err != nil {
		return 0, err
	}

	return player.CountAvailable(players, linked), nil
}
