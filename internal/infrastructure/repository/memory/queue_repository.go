package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/queue"
)

// draftCaptainLister resolves the captains of a draft so that draft-wide queue
// sweeps can fan out. The SQL variant does this with a join on captains.
type draftCaptainLister interface {
	ListByDraft(ctx context.Context, draftID string) ([]captain.Captain, error)
}

type QueueRepository struct {
	mu       sync.Mutex
	items    map[string]queue.Entry
	captains draftCaptainLister
}

func NewQueueRepository(captains draftCaptainLister) *QueueRepository {
	return &QueueRepository{
		items:    make(map[string]queue.Entry),
		captains: captains,
	}
}

func (r *QueueRepository) ListByCaptain(_ context.Context, captainID string) ([]queue.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.listByCaptainLocked(captainID), nil
}

func (r *QueueRepository) GetByID(_ context.Context, entryID string) (queue.Entry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[entryID]
	if !ok {
		return queue.Entry{}, false, nil
	}

	return e, true, nil
}

func (r *QueueRepository) Append(_ context.Context, e queue.Entry) (queue.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxPos := 0
	for _, existing := range r.items {
		if existing.CaptainID != e.CaptainID {
			continue
		}
		if existing.PlayerID == e.PlayerID {
			return queue.Entry{}, queue.ErrDuplicateEntry
		}
		if existing.Position > maxPos {
			maxPos = existing.Position
		}
	}

	e.Position = maxPos + 1
	r.items[e.ID] = e

	return e, nil
}

func (r *QueueRepository) Remove(_ context.Context, captainID, entryID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[entryID]
	if !ok || e.CaptainID != captainID {
		return false, nil
	}
	delete(r.items, entryID)

	return true, nil
}

func (r *QueueRepository) Reorder(_ context.Context, captainID string, entryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for pos, id := range entryIDs {
		e, ok := r.items[id]
		if !ok || e.CaptainID != captainID {
			return fmt.Errorf("queue entry %s does not belong to captain %s", id, captainID)
		}
		e.Position = pos + 1
		r.items[id] = e
	}

	return nil
}

func (r *QueueRepository) RemovePlayerEverywhere(ctx context.Context, draftID, playerID string) error {
	captains, err := r.captains.ListByDraft(ctx, draftID)
	if err != nil {
		return fmt.Errorf("list draft captains: %w", err)
	}
	inDraft := make(map[string]struct{}, len(captains))
	for _, c := range captains {
		inDraft[c.ID] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.items {
		if e.PlayerID != playerID {
			continue
		}
		if _, ok := inDraft[e.CaptainID]; ok {
			delete(r.items, id)
		}
	}

	return nil
}

func (r *QueueRepository) ClearByDraft(ctx context.Context, draftID string) error {
	captains, err := r.captains.ListByDraft(ctx, draftID)
	if err != nil {
		return fmt.Errorf("list draft captains: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range captains {
		for id, e := range r.items {
			if e.CaptainID == c.ID {
				delete(r.items, id)
			}
		}
	}

	return nil
}

func (r *QueueRepository) listByCaptainLocked(captainID string) []queue.Entry {
	out := make([]queue.Entry, 0)
	for _, e := range r.items {
		if e.CaptainID == captainID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out
}
