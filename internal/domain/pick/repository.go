package pick

import "context"

// Repository describes pick-log persistence needs from use cases.
type Repository interface {
	// Insert appends one pick. Returns ErrDuplicatePickNumber when the
	// (draft_id, pick_number) uniqueness constraint rejects the row.
	Insert(ctx context.Context, p Pick) error

	GetByNumber(ctx context.Context, draftID string, pickNumber int) (Pick, bool, error)

	// ListByDraft returns the draft's picks ordered by pick_number.
	ListByDraft(ctx context.Context, draftID string) ([]Pick, error)

	Delete(ctx context.Context, pickID string) error
	DeleteByDraft(ctx context.Context, draftID string) error

	// InsertMany re-appends snapshotted picks during compensation.
	InsertMany(ctx context.Context, picks []Pick) error
}
