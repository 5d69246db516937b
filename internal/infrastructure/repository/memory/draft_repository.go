package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/draft"
)

// DraftRepository keeps drafts in process memory. All conditional updates are
// applied under one lock, which gives the same atomicity the SQL variants get
// from conditional UPDATE statements.
type DraftRepository struct {
	mu    sync.RWMutex
	items map[string]draft.Draft
	now   func() time.Time
}

func NewDraftRepository(drafts []draft.Draft) *DraftRepository {
	items := make(map[string]draft.Draft, len(drafts))
	for _, d := range drafts {
		items[d.ID] = d
	}

	return &DraftRepository{
		items: items,
		now:   time.Now,
	}
}

func (r *DraftRepository) GetByID(_ context.Context, draftID string) (draft.Draft, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[draftID]
	if !ok {
		return draft.Draft{}, false, nil
	}

	return cloneDraft(d), true, nil
}

func (r *DraftRepository) AdvancePick(_ context.Context, draftID string, expectedIndex int, startedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[draftID]
	if !ok || d.Status != draft.StatusInProgress || d.CurrentPickIndex != expectedIndex {
		return false, nil
	}

	d.CurrentPickIndex = expectedIndex + 1
	d.CurrentPickStartedAt = &startedAt
	d.UpdatedAt = r.now().UTC()
	r.items[draftID] = d

	return true, nil
}

func (r *DraftRepository) CompletePick(_ context.Context, draftID string, expectedIndex int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[draftID]
	if !ok || d.Status != draft.StatusInProgress || d.CurrentPickIndex != expectedIndex {
		return false, nil
	}

	d.Status = draft.StatusCompleted
	d.CurrentPickIndex = expectedIndex + 1
	d.CurrentPickStartedAt = nil
	d.UpdatedAt = r.now().UTC()
	r.items[draftID] = d

	return true, nil
}

func (r *DraftRepository) RewindPick(_ context.Context, draftID string, expectedIndex int, startedAt *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[draftID]
	if !ok || d.CurrentPickIndex != expectedIndex || expectedIndex < 1 {
		return false, nil
	}
	if d.Status != draft.StatusInProgress && d.Status != draft.StatusPaused {
		return false, nil
	}

	d.CurrentPickIndex = expectedIndex - 1
	d.CurrentPickStartedAt = cloneTime(startedAt)
	d.UpdatedAt = r.now().UTC()
	r.items[draftID] = d

	return true, nil
}

func (r *DraftRepository) TransitionStatus(_ context.Context, draftID string, from, to draft.Status, startedAt *time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[draftID]
	if !ok || d.Status != from {
		return false, nil
	}

	d.Status = to
	d.CurrentPickStartedAt = cloneTime(startedAt)
	d.UpdatedAt = r.now().UTC()
	r.items[draftID] = d

	return true, nil
}

func (r *DraftRepository) ResetToNotStarted(_ context.Context, draftID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[draftID]
	if !ok || d.Status != draft.StatusPaused {
		return false, nil
	}

	d.Status = draft.StatusNotStarted
	d.CurrentPickIndex = 0
	d.CurrentPickStartedAt = nil
	d.UpdatedAt = r.now().UTC()
	r.items[draftID] = d

	return true, nil
}

func cloneDraft(d draft.Draft) draft.Draft {
	copied := d
	copied.CurrentPickStartedAt = cloneTime(d.CurrentPickStartedAt)
	return copied
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
