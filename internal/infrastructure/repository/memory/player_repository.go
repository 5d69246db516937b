package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
	now   func() time.Time
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(players))
	for _, p := range players {
		items[p.ID] = p
	}

	return &PlayerRepository{
		items: items,
		now:   time.Now,
	}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return p, true, nil
}

func (r *PlayerRepository) ListByDraft(_ context.Context, draftID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, p := range r.items {
		if p.DraftID == draftID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })

	return out, nil
}

func (r *PlayerRepository) MarkPicked(_ context.Context, playerID, captainID string, pickNumber int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok || p.Picked() {
		return false, nil
	}

	p.PickedBy = captainID
	p.PickNumber = pickNumber
	p.UpdatedAt = r.now().UTC()
	r.items[playerID] = p

	return true, nil
}

func (r *PlayerRepository) ResetPicked(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[playerID]
	if !ok {
		return nil
	}

	p.PickedBy = ""
	p.PickNumber = 0
	p.UpdatedAt = r.now().UTC()
	r.items[playerID] = p

	return nil
}

func (r *PlayerRepository) ResetAllPicked(_ context.Context, draftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.items {
		if p.DraftID != draftID || !p.Picked() {
			continue
		}
		p.PickedBy = ""
		p.PickNumber = 0
		p.UpdatedAt = r.now().UTC()
		r.items[id] = p
	}

	return nil
}

func (r *PlayerRepository) RestorePicked(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, snap := range players {
		p, ok := r.items[snap.ID]
		if !ok {
			continue
		}
		p.PickedBy = snap.PickedBy
		p.PickNumber = snap.PickNumber
		p.UpdatedAt = r.now().UTC()
		r.items[snap.ID] = p
	}

	return nil
}
