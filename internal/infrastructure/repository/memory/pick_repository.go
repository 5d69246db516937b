package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/draft-engine/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.Mutex
	items map[string]pick.Pick
	// taken mirrors the (draft_id, pick_number) unique constraint.
	taken map[pickKey]string
}

type pickKey struct {
	draftID    string
	pickNumber int
}

func NewPickRepository() *PickRepository {
	return &PickRepository{
		items: make(map[string]pick.Pick),
		taken: make(map[pickKey]string),
	}
}

func (r *PickRepository) Insert(_ context.Context, p pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pickKey{draftID: p.DraftID, pickNumber: p.PickNumber}
	if _, exists := r.taken[key]; exists {
		return pick.ErrDuplicatePickNumber
	}

	r.items[p.ID] = p
	r.taken[key] = p.ID

	return nil
}

func (r *PickRepository) GetByNumber(_ context.Context, draftID string, pickNumber int) (pick.Pick, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.taken[pickKey{draftID: draftID, pickNumber: pickNumber}]
	if !ok {
		return pick.Pick{}, false, nil
	}

	return r.items[id], true, nil
}

func (r *PickRepository) ListByDraft(_ context.Context, draftID string) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.DraftID == draftID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PickNumber < out[j].PickNumber })

	return out, nil
}

func (r *PickRepository) Delete(_ context.Context, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[pickID]
	if !ok {
		return nil
	}

	delete(r.items, pickID)
	delete(r.taken, pickKey{draftID: p.DraftID, pickNumber: p.PickNumber})

	return nil
}

func (r *PickRepository) DeleteByDraft(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		if p.DraftID != draftID {
			continue
		}
		delete(r.items, id)
		delete(r.taken, pickKey{draftID: p.DraftID, pickNumber: p.PickNumber})
	}

	return nil
}

func (r *PickRepository) InsertMany(ctx context.Context, picks []pick.Pick) error {
	for _, p := range picks {
		if err := r.Insert(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
