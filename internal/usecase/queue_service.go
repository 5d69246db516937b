package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
	"github.com/riskibarqy/draft-engine/internal/domain/queue"
	idgen "github.com/riskibarqy/draft-engine/internal/platform/id"
	"github.com/riskibarqy/draft-engine/internal/platform/logging"
)

// QueueService manages each captain's ranked preference list, consumed by the
// auto-pick engine. Queue state is best effort: losing an entry never breaks
// draft correctness.
type QueueService struct {
	drafts     draft.Repository
	captains   captain.Repository
	players    player.Repository
	queues     queue.Repository
	authorizer *Authorizer
	auditor    AuditEmitter
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewQueueService(
	drafts draft.Repository,
	captains captain.Repository,
	players player.Repository,
	queues queue.Repository,
	authorizer *Authorizer,
	auditor AuditEmitter,
	idGen idgen.Generator,
	logger *logging.Logger,
) *QueueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &QueueService{
		drafts:     drafts,
		captains:   captains,
		players:    players,
		queues:     queues,
		authorizer: authorizer,
		auditor:    auditor,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// QueueInput identifies the captain whose queue is being touched plus the
// caller's credentials.
type QueueInput struct {
	DraftID       string
	CaptainID     string
	CaptainToken  string
	OwnerIdentity string
	SourceAddr    string
}

func (s *QueueService) Add(ctx context.Context, input QueueInput, playerID string) (queue.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueueService.Add")
	defer span.End()

	if playerID == "" {
		return queue.Entry{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	d, actor, err := s.authorizeQueueAccess(ctx, input)
	if err != nil {
		return queue.Entry{}, err
	}

	target, exists, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return queue.Entry{}, fmt.Errorf("get player: %w", err)
	}
	if !exists || target.DraftID != d.ID {
		return queue.Entry{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return queue.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	entry, err := s.queues.Append(ctx, queue.Entry{
		ID:        entryID,
		CaptainID: input.CaptainID,
		PlayerID:  playerID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, queue.ErrDuplicateEntry) {
			return queue.Entry{}, fmt.Errorf("%w: player already queued", ErrConflict)
		}
		return queue.Entry{}, fmt.Errorf("append queue entry: %w", err)
	}

	s.emitQueueAudit(actor, input, "queue_add", map[string]any{
		"entry_id":  entry.ID,
		"player_id": playerID,
		"position":  entry.Position,
	})

	return entry, nil
}

func (s *QueueService) Remove(ctx context.Context, input QueueInput, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueueService.Remove")
	defer span.End()

	if entryID == "" {
		return fmt.Errorf("%w: entry_id is required", ErrInvalidInput)
	}

	_, actor, err := s.authorizeQueueAccess(ctx, input)
	if err != nil {
		return err
	}

	removed, err := s.queues.Remove(ctx, input.CaptainID, entryID)
	if err != nil {
		return fmt.Errorf("remove queue entry: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: queue entry %s for captain %s", ErrNotFound, entryID, input.CaptainID)
	}

	s.emitQueueAudit(actor, input, "queue_remove", map[string]any{
		"entry_id": entryID,
	})

	return nil
}

// Reorder applies the caller's full desired ordering in one atomic
// renumbering, so concurrent readers never observe transient duplicate
// positions.
func (s *QueueService) Reorder(ctx context.Context, input QueueInput, entryIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueueService.Reorder")
	defer span.End()

	if len(entryIDs) == 0 {
		return fmt.Errorf("%w: entry_ids are required", ErrInvalidInput)
	}

	d, actor, err := s.authorizeQueueAccess(ctx, input)
	if err != nil {
		return err
	}

	current, err := s.queues.ListByCaptain(ctx, input.CaptainID)
	if err != nil {
		return fmt.Errorf("list queue entries: %w", err)
	}

	available, err := s.availablePlayerIDs(ctx, d.ID)
	if err != nil {
		return err
	}

	// Clients build the ordering from the filtered read view, so stale
	// entries do not count toward completeness; they get swept below.
	live := make(map[string]struct{}, len(current))
	var stale []queue.Entry
	for _, e := range current {
		if _, ok := available[e.PlayerID]; ok {
			live[e.ID] = struct{}{}
		} else {
			stale = append(stale, e)
		}
	}

	if len(entryIDs) != len(live) {
		return fmt.Errorf("%w: ordering must list all %d entries, got %d", ErrInvalidInput, len(live), len(entryIDs))
	}

	seen := make(map[string]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		if _, ok := live[id]; !ok {
			return fmt.Errorf("%w: queue entry %s for captain %s", ErrNotFound, id, input.CaptainID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate entry id %s in ordering", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	for _, e := range stale {
		if _, err := s.queues.Remove(ctx, input.CaptainID, e.ID); err != nil {
			s.logger.WarnContext(ctx, "stale queue entry sweep failed",
				"captain_id", input.CaptainID,
				"entry_id", e.ID,
				"error", err,
			)
		}
	}

	if err := s.queues.Reorder(ctx, input.CaptainID, entryIDs); err != nil {
		return fmt.Errorf("reorder queue: %w", err)
	}

	s.emitQueueAudit(actor, input, "queue_reorder", map[string]any{
		"entry_count": len(entryIDs),
	})

	return nil
}

// List returns the captain's queue with stale entries (players picked or
// linked in the meantime) filtered out at read time.
func (s *QueueService) List(ctx context.Context, input QueueInput) ([]queue.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueueService.List")
	defer span.End()

	d, _, err := s.authorizeQueueAccess(ctx, input)
	if err != nil {
		return nil, err
	}

	entries, err := s.queues.ListByCaptain(ctx, input.CaptainID)
	if err != nil {
		return nil, fmt.Errorf("list queue entries: %w", err)
	}

	available, err := s.availablePlayerIDs(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	out := make([]queue.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := available[e.PlayerID]; ok {
			out = append(out, e)
		}
	}

	return out, nil
}

// availablePlayerIDs is the shared staleness filter: a queue entry counts
// only while its player is still draftable.
func (s *QueueService) availablePlayerIDs(ctx context.Context, draftID string) (map[string]struct{}, error) {
	players, err := s.players.ListByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	captains, err := s.captains.ListByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("list captains: %w", err)
	}

	available := make(map[string]struct{})
	for _, p := range player.FilterAvailable(players, captain.LinkedPlayerIDs(captains)) {
		available[p.ID] = struct{}{}
	}

	return available, nil
}

func (s *QueueService) authorizeQueueAccess(ctx context.Context, input QueueInput) (draft.Draft, Actor, error) {
	if input.DraftID == "" || input.CaptainID == "" {
		return draft.Draft{}, Actor{}, fmt.Errorf("%w: draft_id and captain_id are required", ErrInvalidInput)
	}

	d, exists, err := s.drafts.GetByID(ctx, input.DraftID)
	if err != nil {
		return draft.Draft{}, Actor{}, fmt.Errorf("get draft: %w", err)
	}
	if !exists {
		return draft.Draft{}, Actor{}, fmt.Errorf("%w: draft %s", ErrNotFound, input.DraftID)
	}

	actor, err := s.authorizer.Authorize(ctx, d, Credentials{
		CaptainID:     input.CaptainID,
		CaptainToken:  input.CaptainToken,
		OwnerIdentity: input.OwnerIdentity,
	})
	if err != nil {
		return draft.Draft{}, Actor{}, err
	}

	// A captain token only grants access to that captain's own queue.
	if actor.Type == audit.ActorCaptain && actor.CaptainID != input.CaptainID {
		return draft.Draft{}, Actor{}, fmt.Errorf("%w: token does not belong to captain %s", ErrUnauthorized, input.CaptainID)
	}

	cpt, exists, err := s.captains.GetByID(ctx, input.CaptainID)
	if err != nil {
		return draft.Draft{}, Actor{}, fmt.Errorf("get captain: %w", err)
	}
	if !exists || cpt.DraftID != d.ID {
		return draft.Draft{}, Actor{}, fmt.Errorf("%w: captain %s", ErrNotFound, input.CaptainID)
	}

	return d, actor, nil
}

func (s *QueueService) emitQueueAudit(actor Actor, input QueueInput, action string, metadata map[string]any) {
	metadata["captain_id"] = input.CaptainID
	s.auditor.Emit(audit.Entry{
		Action:     action,
		DraftID:    input.DraftID,
		ActorType:  actor.Type,
		ActorID:    actor.ID(),
		Metadata:   metadata,
		SourceAddr: input.SourceAddr,
	})
}
