package captain

import (
	"fmt"
	"sort"
	"time"
)

// Captain is a participant taking turns in a draft. A captain may be linked
// 1:1 to a player from the pool; that player is unavailable to everyone and
// the captain does not receive an extra pick for it.
type Captain struct {
	ID              string
	DraftID         string
	DisplayName     string
	DraftPosition   int
	AccessToken     string
	LinkedPlayerID  string
	AutoPickEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SortByPosition orders captains by draft_position in place.
func SortByPosition(captains []Captain) {
	sort.Slice(captains, func(i, j int) bool {
		return captains[i].DraftPosition < captains[j].DraftPosition
	})
}

// OrderedIDs returns captain ids sorted by draft_position.
func OrderedIDs(captains []Captain) []string {
	sorted := append([]Captain(nil), captains...)
	SortByPosition(sorted)

	ids := make([]string, 0, len(sorted))
	for _, c := range sorted {
		ids = append(ids, c.ID)
	}

	return ids
}

// ValidatePositions checks that draft positions are unique and contiguous
// starting at 1. The pick order resolver depends on this invariant.
func ValidatePositions(captains []Captain) error {
	if len(captains) == 0 {
		return fmt.Errorf("draft has no captains")
	}

	seen := make(map[int]struct{}, len(captains))
	for _, c := range captains {
		if _, ok := seen[c.DraftPosition]; ok {
			return fmt.Errorf("duplicate draft position %d", c.DraftPosition)
		}
		seen[c.DraftPosition] = struct{}{}
	}
	for pos := 1; pos <= len(captains); pos++ {
		if _, ok := seen[pos]; !ok {
			return fmt.Errorf("draft positions are not contiguous: missing %d", pos)
		}
	}

	return nil
}

// LinkedPlayerIDs collects the non-empty linked player ids across captains.
func LinkedPlayerIDs(captains []Captain) []string {
	ids := make([]string, 0, len(captains))
	for _, c := range captains {
		if c.LinkedPlayerID != "" {
			ids = append(ids, c.LinkedPlayerID)
		}
	}

	return ids
}
