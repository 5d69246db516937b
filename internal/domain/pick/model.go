package pick

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicatePickNumber is returned by Repository.Insert when another writer
// already recorded a pick with the same (draft_id, pick_number). The unique
// constraint behind it is the primary concurrency guard of the engine, so this
// is an expected race, not a storage failure.
var ErrDuplicatePickNumber = errors.New("pick number already recorded for draft")

// Pick is an append-only log entry recording one selection event. Rows are
// deleted only by undo (exactly the most recent pick) or restart (all rows of
// a draft).
type Pick struct {
	ID         string
	DraftID    string
	CaptainID  string
	PlayerID   string
	PickNumber int
	IsAutoPick bool
	CreatedAt  time.Time
}

func (p Pick) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("pick id is required")
	}
	if p.DraftID == "" {
		return fmt.Errorf("pick draft id is required")
	}
	if p.CaptainID == "" {
		return fmt.Errorf("pick captain id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("pick player id is required")
	}
	if p.PickNumber < 1 {
		return fmt.Errorf("pick number must be 1-based, got %d", p.PickNumber)
	}

	return nil
}
