package audit

import (
	"context"
	"time"
)

// ActorType distinguishes who performed an audited action.
type ActorType string

const (
	ActorCaptain ActorType = "captain"
	ActorOwner   ActorType = "owner"
	ActorSystem  ActorType = "system"
)

// Entry records one successful mutation. Emission is fire-and-forget: it must
// never block or fail the primary response.
type Entry struct {
	ID         string
	Action     string
	DraftID    string
	ActorType  ActorType
	ActorID    string
	Metadata   map[string]any
	SourceAddr string
	CreatedAt  time.Time
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}
