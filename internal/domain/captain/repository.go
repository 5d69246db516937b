package captain

import "context"

// Repository describes captain persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, captainID string) (Captain, bool, error)

	// ListByDraft returns the draft's captains ordered by draft_position.
	ListByDraft(ctx context.Context, draftID string) ([]Captain, error)

	SetAutoPick(ctx context.Context, captainID string, enabled bool) error

	// ClearAutoPickByDraft turns auto-pick off for every captain in the
	// draft. Used by restart; best effort.
	ClearAutoPickByDraft(ctx context.Context, draftID string) error
}
