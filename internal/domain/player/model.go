package player

import "time"

// Player is one unit being selected in a draft. PickedBy and PickNumber are
// either both zero (unpicked) or both set; they are written atomically when a
// pick is recorded.
type Player struct {
	ID          string
	DraftID     string
	DisplayName string
	PickedBy    string
	PickNumber  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Player) Picked() bool {
	return p.PickedBy != ""
}
