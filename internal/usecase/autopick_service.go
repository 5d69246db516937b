package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
	"github.com/riskibarqy/draft-engine/internal/domain/queue"
	"github.com/riskibarqy/draft-engine/internal/platform/logging"
)

// DefaultTimerGrace absorbs clock skew between the caller that observed the
// timer expire and the server's own clock.
const DefaultTimerGrace = 2 * time.Second

// AutoPickInput is the incoming payload for an automatic pick. Any observer
// of the draft may trigger it after the turn timer elapses; the server
// validates elapsed time itself. ExpectedPickIndex lets callers that watched
// a specific turn detect they lost the race without treating it as an error.
type AutoPickInput struct {
	DraftID           string
	ExpectedPickIndex *int
	CaptainToken      string
	OwnerIdentity     string
	SourceAddr        string
}

// AutoPickService records a pick on behalf of the current picker, either
// immediately when the captain opted into auto mode, or after the per-turn
// deadline passed. Selection prefers the captain's queue and falls back to a
// uniformly random available player.
type AutoPickService struct {
	pickSvc    *PickService
	drafts     draft.Repository
	captains   captain.Repository
	players    player.Repository
	queues     queue.Repository
	authorizer *Authorizer
	auditor    AuditEmitter
	logger     *logging.Logger
	grace      time.Duration
	now        func() time.Time
	randIntn   func(n int) int
}

func NewAutoPickService(
	pickSvc *PickService,
	drafts draft.Repository,
	captains captain.Repository,
	players player.Repository,
	queues queue.Repository,
	authorizer *Authorizer,
	auditor AuditEmitter,
	logger *logging.Logger,
) *AutoPickService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AutoPickService{
		pickSvc:    pickSvc,
		drafts:     drafts,
		captains:   captains,
		players:    players,
		queues:     queues,
		authorizer: authorizer,
		auditor:    auditor,
		logger:     logger,
		grace:      DefaultTimerGrace,
		now:        time.Now,
		randIntn:   rand.Intn,
	}
}

func (s *AutoPickService) AutoPick(ctx context.Context, input AutoPickInput) (PickOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoPickService.AutoPick")
	defer span.End()

	if input.DraftID == "" {
		return PickOutcome{}, fmt.Errorf("%w: draft_id is required", ErrInvalidInput)
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

	// Concurrent auto-pick triggers from multiple observers are expected. A
	// stale expected index means somebody else already handled this turn.
	if input.ExpectedPickIndex != nil && *input.ExpectedPickIndex != d.CurrentPickIndex {
		s.logger.InfoContext(ctx, "auto-pick index already consumed",
			"draft_id", d.ID,
			"expected_index", *input.ExpectedPickIndex,
			"current_index", d.CurrentPickIndex,
		)
		return PickOutcome{AlreadyPicked: true, NextPickIndex: d.CurrentPickIndex}, nil
	}

	captains, err := s.captains.ListByDraft(ctx, d.ID)
	if err != nil {
		return PickOutcome{}, fmt.Errorf("list captains: %w", err)
	}
	if err := captain.ValidatePositions(captains); err != nil {
		return PickOutcome{}, fmt.Errorf("draft order is inconsistent: %w", err)
	}

	pickerID, err := draft.PickerAt(d.Type, captain.OrderedIDs(captains), d.CurrentPickIndex)
	if err != nil {
		return PickOutcome{}, fmt.Errorf("resolve picker: %w", err)
	}

	var picker captain.Captain
	for _, c := range captains {
		if c.ID == pickerID {
			picker = c
			break
		}
	}

	actor := Actor{Type: audit.ActorSystem}
	if strings.TrimSpace(input.CaptainToken) != "" || strings.TrimSpace(input.OwnerIdentity) != "" {
		actor, err = s.authorizer.Authorize(ctx, d, Credentials{
			CaptainID:     pickerID,
			CaptainToken:  input.CaptainToken,
			OwnerIdentity: input.OwnerIdentity,
		})
		if err != nil {
			return PickOutcome{}, err
		}
	}

	if !picker.AutoPickEnabled {
		if outcome, expired := s.timerExpired(ctx, d); !expired {
			return outcome, nil
		}
	}

	playerID, fromQueue, err := s.selectPlayer(ctx, d, captains, picker)
	if err != nil {
		return PickOutcome{}, err
	}

	outcome, err := s.pickSvc.recordPick(ctx, d, captains, pickerID, playerID, true)
	if err != nil {
		return PickOutcome{}, err
	}

	if !outcome.AlreadyPicked {
		s.auditor.Emit(audit.Entry{
			Action:    "auto_pick",
			DraftID:   d.ID,
			ActorType: actor.Type,
			ActorID:   actor.ID(),
			Metadata: map[string]any{
				"captain_id":  pickerID,
				"player_id":   playerID,
				"pick_number": outcome.Pick.PickNumber,
				"from_queue":  fromQueue,
				"completed":   outcome.DraftCompleted,
			},
			SourceAddr: input.SourceAddr,
		})
	}

	return outcome, nil
}

// SetAutoPickInput toggles a captain's auto mode. The captain themselves (by
// token) or the draft owner may flip it.
type SetAutoPickInput struct {
	DraftID       string
	CaptainID     string
	Enabled       bool
	CaptainToken  string
	OwnerIdentity string
	SourceAddr    string
}

func (s *AutoPickService) SetAutoPickEnabled(ctx context.Context, input SetAutoPickInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoPickService.SetAutoPickEnabled")
	defer span.End()

	if input.DraftID == "" || input.CaptainID == "" {
		return fmt.Errorf("%w: draft_id and captain_id are required", ErrInvalidInput)
	}

	d, exists, err := s.drafts.GetByID(ctx, input.DraftID)
	if err != nil {
		return fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: draft %s", ErrNotFound, input.DraftID)
	}

	actor, err := s.authorizer.Authorize(ctx, d, Credentials{
		CaptainID:     input.CaptainID,
		CaptainToken:  input.CaptainToken,
		OwnerIdentity: input.OwnerIdentity,
	})
	if err != nil {
		return err
	}
	if actor.Type == audit.ActorCaptain && actor.CaptainID != input.CaptainID {
		return fmt.Errorf("%w: captains may only change their own auto-pick mode", ErrUnauthorized)
	}

	c, exists, err := s.captains.GetByID(ctx, input.CaptainID)
	if err != nil {
		return fmt.Errorf("get captain: %w", err)
	}
	if !exists || c.DraftID != d.ID {
		return fmt.Errorf("%w: captain %s", ErrNotFound, input.CaptainID)
	}

	if err := s.captains.SetAutoPick(ctx, c.ID, input.Enabled); err != nil {
		return fmt.Errorf("set auto pick: %w", err)
	}

	s.auditor.Emit(audit.Entry{
		Action:    "set_auto_pick",
		DraftID:   d.ID,
		ActorType: actor.Type,
		ActorID:   actor.ID(),
		Metadata: map[string]any{
			"captain_id": c.ID,
			"enabled":    input.Enabled,
		},
		SourceAddr: input.SourceAddr,
	})

	return nil
}

// timerExpired checks the server-side turn clock. Callers fire on their own
// observed expiry; the server only rejects calls that are early beyond the
// grace window, as a defensive measure, via a soft result.
func (s *AutoPickService) timerExpired(ctx context.Context, d draft.Draft) (PickOutcome, bool) {
	if d.TimeLimitSeconds <= 0 {
		return PickOutcome{}, true
	}
	if d.CurrentPickStartedAt == nil {
		s.logger.WarnContext(ctx, "auto-pick requested but no pick clock is running", "draft_id", d.ID)
		return PickOutcome{TimerNotExpired: true, NextPickIndex: d.CurrentPickIndex}, false
	}

	elapsed := s.now().UTC().Sub(d.CurrentPickStartedAt.UTC())
	required := time.Duration(d.TimeLimitSeconds)*time.Second - s.grace
	if elapsed < required {
		s.logger.InfoContext(ctx, "auto-pick requested before timer expiry",
			"draft_id", d.ID,
			"elapsed", elapsed,
			"required", required,
		)
		return PickOutcome{TimerNotExpired: true, NextPickIndex: d.CurrentPickIndex}, false
	}

	return PickOutcome{}, true
}

// selectPlayer walks the picker's queue in rank order and takes the first
// still-available player, skipping entries whose player was picked in the
// meantime. An exhausted or empty queue falls back to a uniformly random
// available player.
func (s *AutoPickService) selectPlayer(ctx context.Context, d draft.Draft, captains []captain.Captain, picker captain.Captain) (string, bool, error) {
	players, err := s.players.ListByDraft(ctx, d.ID)
	if err != nil {
		return "", false, fmt.Errorf("list players: %w", err)
	}

	linked := captain.LinkedPlayerIDs(captains)
	available := player.FilterAvailable(players, linked)
	if len(available) == 0 {
		return "", false, fmt.Errorf("%w: draft %s", ErrNoPlayersAvailable, d.ID)
	}

	availableSet := make(map[string]struct{}, len(available))
	for _, p := range available {
		availableSet[p.ID] = struct{}{}
	}

	entries, err := s.queues.ListByCaptain(ctx, picker.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "queue read failed, falling back to random selection",
			"draft_id", d.ID,
			"captain_id", picker.ID,
			"error", err,
		)
		entries = nil
	}

	for _, e := range entries {
		if _, ok := availableSet[e.PlayerID]; ok {
			return e.PlayerID, true, nil
		}
	}

	return available[s.randIntn(len(available))].ID, false, nil
}
