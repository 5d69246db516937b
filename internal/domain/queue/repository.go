package queue

import "context"

// Repository describes queue persistence needs from use cases.
type Repository interface {
	// ListByCaptain returns the captain's entries ordered by position.
	ListByCaptain(ctx context.Context, captainID string) ([]Entry, error)

	GetByID(ctx context.Context, entryID string) (Entry, bool, error)

	// Append inserts the entry at the next position after the captain's
	// current max. Returns ErrDuplicateEntry for a repeated player.
	Append(ctx context.Context, e Entry) (Entry, error)

	// Remove deletes one entry scoped to its owning captain. Reports whether
	// a row was deleted.
	Remove(ctx context.Context, captainID, entryID string) (bool, error)

	// Reorder applies the full desired ordering of the captain's entry ids as
	// a single atomic renumbering; concurrent readers never observe duplicate
	// positions.
	Reorder(ctx context.Context, captainID string, entryIDs []string) error

	// RemovePlayerEverywhere sweeps a just-picked player out of every queue
	// in the draft. Best effort.
	RemovePlayerEverywhere(ctx context.Context, draftID, playerID string) error

	// ClearByDraft wipes every captain queue in the draft. Best effort,
	// used by restart.
	ClearByDraft(ctx context.Context, draftID string) error
}
