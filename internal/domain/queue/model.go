package queue

import (
	"errors"
	"time"
)

// ErrDuplicateEntry is returned when a captain queues a player already on
// their list. Unique per (captain_id, player_id).
var ErrDuplicateEntry = errors.New("player already queued for captain")

// Entry is one slot in a captain's ranked preference list. Positions are
// dense per captain. Entries referencing an already-picked player are not
// deleted eagerly; reads filter them out and they are swept when the player
// is picked by anyone. Losing an entry is never a correctness failure.
type Entry struct {
	ID        string
	CaptainID string
	PlayerID  string
	Position  int
	CreatedAt time.Time
}
