package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	ListByDraft(ctx context.Context, draftID string) ([]Player, error)

	// MarkPicked sets picked_by and pick_number in one write, conditional on
	// the player still being unpicked. Reports whether a row changed.
	MarkPicked(ctx context.Context, playerID, captainID string, pickNumber int) (bool, error)

	// ResetPicked clears picked_by and pick_number for one player.
	ResetPicked(ctx context.Context, playerID string) error

	// ResetAllPicked clears pick fields for every player in the draft.
	ResetAllPicked(ctx context.Context, draftID string) error

	// RestorePicked re-applies previously snapshotted pick fields. Used when
	// a restart has to roll back after a later step fails.
	RestorePicked(ctx context.Context, players []Player) error
}
