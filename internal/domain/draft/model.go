package draft

import (
	"fmt"
	"time"
)

// Type selects the turn-order algorithm for a draft.
type Type string

const (
	TypeSnake      Type = "snake"
	TypeRoundRobin Type = "round_robin"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSnake, TypeRoundRobin:
		return true
	default:
		return false
	}
}

// Status is the lifecycle phase of a draft.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusPaused, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the lifecycle allows moving from one status to
// another. completed is terminal; paused -> not_started is reserved for restart.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusNotStarted:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusPaused || to == StatusCompleted
	case StatusPaused:
		return to == StatusInProgress || to == StatusNotStarted
	default:
		return false
	}
}

// Draft is the aggregate root of one turn-based selection process. It owns the
// authoritative turn pointer; every advance, rewind, or completion mutates
// CurrentPickIndex through a conditional write guarded by its previous value.
type Draft struct {
	ID                   string
	OwnerID              string
	Name                 string
	Type                 Type
	Status               Status
	CurrentPickIndex     int
	CurrentPickStartedAt *time.Time
	TimeLimitSeconds     int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (d Draft) ValidateBasic() error {
	if d.ID == "" {
		return fmt.Errorf("draft id is required")
	}
	if d.OwnerID == "" {
		return fmt.Errorf("draft owner id is required")
	}
	if !d.Type.Valid() {
		return fmt.Errorf("unknown draft type %q", d.Type)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("unknown draft status %q", d.Status)
	}
	if d.CurrentPickIndex < 0 {
		return fmt.Errorf("current pick index cannot be negative")
	}
	if d.TimeLimitSeconds < 0 {
		return fmt.Errorf("time limit cannot be negative")
	}

	return nil
}
