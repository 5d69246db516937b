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
	"github.com/riskibarqy/draft-engine/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// AdminInput carries the owner's verified identity for lifecycle operations.
type AdminInput struct {
	DraftID       string
	OwnerIdentity string
	SourceAddr    string
}

// DraftAdminService owns the lifecycle transitions plus the two compensating
// engines: undo (reverse exactly the most recent pick) and restart (wipe all
// picks while paused).
type DraftAdminService struct {
	drafts     draft.Repository
	captains   captain.Repository
	players    player.Repository
	picks      pick.Repository
	queues     queue.Repository
	authorizer *Authorizer
	auditor    AuditEmitter
	logger     *logging.Logger
	now        func() time.Time
}

func NewDraftAdminService(
	drafts draft.Repository,
	captains captain.Repository,
	players player.Repository,
	picks pick.Repository,
	queues queue.Repository,
	authorizer *Authorizer,
	auditor AuditEmitter,
	logger *logging.Logger,
) *DraftAdminService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DraftAdminService{
		drafts:     drafts,
		captains:   captains,
		players:    players,
		picks:      picks,
		queues:     queues,
		authorizer: authorizer,
		auditor:    auditor,
		logger:     logger,
		now:        time.Now,
	}
}

// Start moves a draft from not_started to in_progress. It requires at least
// two captains with a consistent order and at least as many available players
// as captains, so the first round can complete.
func (s *DraftAdminService) Start(ctx context.Context, input AdminInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftAdminService.Start")
	defer span.End()

	d, actor, err := s.authorizeAdmin(ctx, input)
	if err != nil {
		return err
	}
	if err := requireTransition(d, draft.StatusNotStarted, draft.StatusInProgress); err != nil {
		return err
	}

	captains, err := s.captains.ListByDraft(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("list captains: %w", err)
	}
	if len(captains) < 2 {
		return fmt.Errorf("%w: at least 2 captains are required to start", ErrInvalidInput)
	}
	if err := captain.ValidatePositions(captains); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	players, err := s.players.ListByDraft(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	if available := player.CountAvailable(players, captain.LinkedPlayerIDs(captains)); available < len(captains) {
		return fmt.Errorf("%w: %d available players for %d captains", ErrInvalidInput, available, len(captains))
	}

	startedAt := s.now().UTC()
	ok, err := s.drafts.TransitionStatus(ctx, d.ID, draft.StatusNotStarted, draft.StatusInProgress, &startedAt)
	if err != nil {
		return fmt.Errorf("start draft: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: draft left not_started concurrently", ErrConcurrentUpdate)
	}

	s.emitAdminAudit(actor, input, "start_draft", map[string]any{"captains": len(captains)})
	return nil
}

func (s *DraftAdminService) Pause(ctx context.Context, input AdminInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftAdminService.Pause")
	defer span.End()

	d, actor, err := s.authorizeAdmin(ctx, input)
	if err != nil {
		return err
	}
	if err := requireTransition(d, draft.StatusInProgress, draft.StatusPaused); err != nil {
		return err
	}

	ok, err := s.drafts.TransitionStatus(ctx, d.ID, draft.StatusInProgress, draft.StatusPaused, nil)
	if err != nil {
		return fmt.Errorf("pause draft: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: draft left in_progress concurrently", ErrConcurrentUpdate)
	}

	s.emitAdminAudit(actor, input, "pause_draft", map[string]any{"pick_index": d.CurrentPickIndex})
	return nil
}

func (s *DraftAdminService) Resume(ctx context.Context, input AdminInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftAdminService.Resume")
	defer span.End()

	d, actor, err := s.authorizeAdmin(ctx, input)
	if err != nil {
		return err
	}
	if err := requireTransition(d, draft.StatusPaused, draft.StatusInProgress); err != nil {
		return err
	}

	startedAt := s.now().UTC()
	ok, err := s.drafts.TransitionStatus(ctx, d.ID, draft.StatusPaused, draft.StatusInProgress, &startedAt)
	if err != nil {
		return fmt.Errorf("resume draft: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: draft left paused concurrently", ErrConcurrentUpdate)
	}

	s.emitAdminAudit(actor, input, "resume_draft", map[string]any{"pick_index": d.CurrentPickIndex})
	return nil
}

// Undo reverses exactly one pick: the one whose pick_number equals the live
// pointer, i.e. the pointer value before the decrement. If that row is gone a
// concurrent undo already consumed it.
func (s *DraftAdminService) Undo(ctx context.Context, input AdminInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftAdminService.Undo")
	defer span.End()

	d, actor, err := s.authorizeAdmin(ctx, input)
	if err != nil {
		return pick.Pick{}, err
	}
	if d.Status != draft.StatusInProgress && d.Status != draft.StatusPaused {
		return pick.Pick{}, fmt.Errorf("%w: draft is %s", ErrWrongDraftStatus, d.Status)
	}
	if d.CurrentPickIndex <= 0 {
		return pick.Pick{}, fmt.Errorf("%w: draft %s", ErrNoPicksToUndo, d.ID)
	}

	last, exists, err := s.picks.GetByNumber(ctx, d.ID, d.CurrentPickIndex)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get last pick: %w", err)
	}
	if !exists {
		return pick.Pick{}, fmt.Errorf("%w: pick %d of draft %s", ErrAlreadyUndone, d.CurrentPickIndex, d.ID)
	}

	if err := s.picks.Delete(ctx, last.ID); err != nil {
		return pick.Pick{}, fmt.Errorf("delete pick: %w", err)
	}

	if err := s.players.ResetPicked(ctx, last.PlayerID); err != nil {
		s.reinsertPick(ctx, last)
		return pick.Pick{}, fmt.Errorf("reset player: %w", err)
	}

	var startedAt *time.Time
	if d.Status == draft.StatusInProgress {
		at := s.now().UTC()
		startedAt = &at
	}

	ok, err := s.drafts.RewindPick(ctx, d.ID, d.CurrentPickIndex, startedAt)
	if err != nil || !ok {
		s.reinsertPick(ctx, last)
		s.remarkPlayer(ctx, last)
		if err != nil {
			return pick.Pick{}, fmt.Errorf("rewind draft: %w", err)
		}
		return pick.Pick{}, fmt.Errorf("%w: pointer moved before rewind", ErrConcurrentUpdate)
	}

	s.logger.InfoContext(ctx, "pick undone",
		"draft_id", d.ID,
		"pick_number", last.PickNumber,
		"player_id", last.PlayerID,
	)
	s.emitAdminAudit(actor, input, "undo_pick", map[string]any{
		"pick_number": last.PickNumber,
		"captain_id":  last.CaptainID,
		"player_id":   last.PlayerID,
	})

	return last, nil
}

// Restart wipes all picks and returns a paused draft to its initial state.
// Snapshot-then-mutate: the pick log and the picked players are captured
// before any destructive step so later failures can be rolled back.
func (s *DraftAdminService) Restart(ctx context.Context, input AdminInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftAdminService.Restart")
	defer span.End()

	d, actor, err := s.authorizeAdmin(ctx, input)
	if err != nil {
		return err
	}
	if err := requireTransition(d, draft.StatusPaused, draft.StatusNotStarted); err != nil {
		return err
	}

	pickSnapshot, err := s.picks.ListByDraft(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("snapshot picks: %w", err)
	}

	allPlayers, err := s.players.ListByDraft(ctx, d.ID)
	if err != nil {
		return fmt.Errorf("snapshot players: %w", err)
	}
	playerSnapshot := make([]player.Player, 0, len(allPlayers))
	for _, p := range allPlayers {
		if p.Picked() {
			playerSnapshot = append(playerSnapshot, p)
		}
	}

	if err := s.picks.DeleteByDraft(ctx, d.ID); err != nil {
		return fmt.Errorf("delete picks: %w", err)
	}

	if err := s.players.ResetAllPicked(ctx, d.ID); err != nil {
		s.restorePicks(ctx, d.ID, pickSnapshot)
		return fmt.Errorf("reset players: %w", err)
	}

	// Queue and auto-pick cleanup is best effort; a leftover queue entry or
	// flag cannot corrupt a not_started draft.
	var wg conc.WaitGroup
	wg.Go(func() {
		if err := s.queues.ClearByDraft(ctx, d.ID); err != nil {
			s.logger.WarnContext(ctx, "restart queue sweep failed", "draft_id", d.ID, "error", err)
		}
	})
	wg.Go(func() {
		if err := s.captains.ClearAutoPickByDraft(ctx, d.ID); err != nil {
			s.logger.WarnContext(ctx, "restart auto-pick reset failed", "draft_id", d.ID, "error", err)
		}
	})
	wg.Wait()

	ok, err := s.drafts.ResetToNotStarted(ctx, d.ID)
	if err != nil || !ok {
		s.restorePlayers(ctx, d.ID, playerSnapshot)
		s.restorePicks(ctx, d.ID, pickSnapshot)
		if err != nil {
			return fmt.Errorf("reset draft: %w", err)
		}
		return fmt.Errorf("%w: draft left paused concurrently", ErrConcurrentUpdate)
	}

	s.logger.InfoContext(ctx, "draft restarted",
		"draft_id", d.ID,
		"picks_wiped", len(pickSnapshot),
	)
	s.emitAdminAudit(actor, input, "restart_draft", map[string]any{"picks_wiped": len(pickSnapshot)})

	return nil
}

func (s *DraftAdminService) authorizeAdmin(ctx context.Context, input AdminInput) (draft.Draft, Actor, error) {
	if input.DraftID == "" {
		return draft.Draft{}, Actor{}, fmt.Errorf("%w: draft_id is required", ErrInvalidInput)
	}

	d, exists, err := s.drafts.GetByID(ctx, input.DraftID)
	if err != nil {
		return draft.Draft{}, Actor{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return draft.Draft{}, Actor{}, fmt.Errorf("%w: draft %s", ErrNotFound, input.DraftID)
	}

	actor, err := s.authorizer.AuthorizeOwner(d, input.OwnerIdentity)
	if err != nil {
		return draft.Draft{}, Actor{}, err
	}

	return d, actor, nil
}

// requireTransition pins the source state a lifecycle operation expects and
// checks the move against the draft state machine. The caller reuses from as
// the conditional-write predicate.
func requireTransition(d draft.Draft, from, to draft.Status) error {
	if d.Status != from || !draft.CanTransition(from, to) {
		return fmt.Errorf("%w: draft is %s", ErrWrongDraftStatus, d.Status)
	}

	return nil
}

func (s *DraftAdminService) reinsertPick(ctx context.Context, p pick.Pick) {
	if err := s.picks.InsertMany(ctx, []pick.Pick{p}); err != nil {
		s.logger.ErrorContext(ctx, "CRITICAL: undo compensation failed, pick row lost",
			"draft_id", p.DraftID,
			"pick_id", p.ID,
			"pick_number", p.PickNumber,
			"error", err,
		)
	}
}

func (s *DraftAdminService) remarkPlayer(ctx context.Context, p pick.Pick) {
	if _, err := s.players.MarkPicked(ctx, p.PlayerID, p.CaptainID, p.PickNumber); err != nil {
		s.logger.ErrorContext(ctx, "CRITICAL: undo compensation failed, player state drifted",
			"draft_id", p.DraftID,
			"player_id", p.PlayerID,
			"error", err,
		)
	}
}

func (s *DraftAdminService) restorePicks(ctx context.Context, draftID string, snapshot []pick.Pick) {
	if len(snapshot) == 0 {
		return
	}
	if err := s.picks.InsertMany(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "CRITICAL: restart compensation failed, pick log lost",
			"draft_id", draftID,
			"picks", len(snapshot),
			"error", err,
		)
	}
}

func (s *DraftAdminService) restorePlayers(ctx context.Context, draftID string, snapshot []player.Player) {
	if len(snapshot) == 0 {
		return
	}
	if err := s.players.RestorePicked(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "CRITICAL: restart compensation failed, player state drifted",
			"draft_id", draftID,
			"players", len(snapshot),
			"error", err,
		)
	}
}

func (s *DraftAdminService) emitAdminAudit(actor Actor, input AdminInput, action string, metadata map[string]any) {
	s.auditor.Emit(audit.Entry{
		Action:     action,
		DraftID:    input.DraftID,
		ActorType:  actor.Type,
		ActorID:    actor.ID(),
		Metadata:   metadata,
		SourceAddr: input.SourceAddr,
	})
}
