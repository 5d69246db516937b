package draft

import (
	"context"
	"time"
)

// Repository describes draft persistence needs from use cases. Every mutation
// of the turn pointer is conditional: it applies only when the stored state
// still matches the expected state and reports whether a row was changed, so
// callers can detect concurrent writers and compensate.
type Repository interface {
	GetByID(ctx context.Context, draftID string) (Draft, bool, error)

	// AdvancePick moves current_pick_index from expectedIndex to
	// expectedIndex+1 and resets current_pick_started_at, provided the draft
	// is still in_progress at expectedIndex.
	AdvancePick(ctx context.Context, draftID string, expectedIndex int, startedAt time.Time) (bool, error)

	// CompletePick marks the draft completed and clears
	// current_pick_started_at, provided the index still equals expectedIndex.
	CompletePick(ctx context.Context, draftID string, expectedIndex int) (bool, error)

	// RewindPick moves current_pick_index from expectedIndex to
	// expectedIndex-1. startedAt is nil when the draft is paused.
	RewindPick(ctx context.Context, draftID string, expectedIndex int, startedAt *time.Time) (bool, error)

	// TransitionStatus applies a lifecycle transition, conditional on the
	// current status being from. startedAt replaces current_pick_started_at.
	TransitionStatus(ctx context.Context, draftID string, from, to Status, startedAt *time.Time) (bool, error)

	// ResetToNotStarted rewinds a paused draft to its initial state:
	// status not_started, index 0, no running pick clock.
	ResetToNotStarted(ctx context.Context, draftID string) (bool, error)
}
