package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/captain"
)

type CaptainRepository struct {
	mu    sync.RWMutex
	items map[string]captain.Captain
	now   func() time.Time
}

func NewCaptainRepository(captains []captain.Captain) *CaptainRepository {
	items := make(map[string]captain.Captain, len(captains))
	for _, c := range captains {
		items[c.ID] = c
	}

	return &CaptainRepository{
		items: items,
		now:   time.Now,
	}
}

func (r *CaptainRepository) GetByID(_ context.Context, captainID string) (captain.Captain, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[captainID]
	if !ok {
		return captain.Captain{}, false, nil
	}

	return c, true, nil
}

func (r *CaptainRepository) ListByDraft(_ context.Context, draftID string) ([]captain.Captain, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]captain.Captain, 0)
	for _, c := range r.items {
		if c.DraftID == draftID {
			out = append(out, c)
		}
	}
	captain.SortByPosition(out)

	return out, nil
}

func (r *CaptainRepository) SetAutoPick(_ context.Context, captainID string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[captainID]
	if !ok {
		return nil
	}

	c.AutoPickEnabled = enabled
	c.UpdatedAt = r.now().UTC()
	r.items[captainID] = c

	return nil
}

func (r *CaptainRepository) ClearAutoPickByDraft(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.items {
		if c.DraftID != draftID || !c.AutoPickEnabled {
			continue
		}
		c.AutoPickEnabled = false
		c.UpdatedAt = r.now().UTC()
		r.items[id] = c
	}

	return nil
}
