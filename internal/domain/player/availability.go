package player

// A player is available iff nobody has picked it and no captain is linked to
// it. Every read that decides "can this person pick right now" and every
// count used to detect draft completion must go through this filter.

// FilterAvailable returns the players that remain pickable given the linked
// player ids of the draft's captains.
func FilterAvailable(players []Player, linkedPlayerIDs []string) []Player {
	linked := make(map[string]struct{}, len(linkedPlayerIDs))
	for _, id := range linkedPlayerIDs {
		linked[id] = struct{}{}
	}

	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Picked() {
			continue
		}
		if _, ok := linked[p.ID]; ok {
			continue
		}
		out = append(out, p)
	}

	return out
}

// CountAvailable is FilterAvailable without materializing the slice.
func CountAvailable(players []Player, linkedPlayerIDs []string) int {
	linked := make(map[string]struct{}, len(linkedPlayerIDs))
	for _, id := range linkedPlayerIDs {
		linked[id] = struct{}{}
	}

	count := 0
	for _, p := range players {
		if p.Picked() {
			continue
		}
		if _, ok := linked[p.ID]; ok {
			continue
		}
		count++
	}

	return count
}
