package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/draft-engine/internal/domain/draft"
)

// DraftRepository persists drafts. Every turn-pointer mutation is a single
// conditional UPDATE keyed on the expected state; the caller learns from the
// affected-row count whether it won the race.
type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetByID(ctx context.Context, draftID string) (draft.Draft, bool, error) {
	const query = `
SELECT id, owner_id, name, draft_type, status, current_pick_index,
       current_pick_started_at, time_limit_seconds, created_at, updated_at
FROM drafts
WHERE id = $1`

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, draftID); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) AdvancePick(ctx context.Context, draftID string, expectedIndex int, startedAt time.Time) (bool, error) {
	const query = `
UPDATE drafts
SET current_pick_index = current_pick_index + 1,
    current_pick_started_at = $3,
    updated_at = NOW()
WHERE id = $1
  AND status = 'in_progress'
  AND current_pick_index = $2`

	res, err := r.db.ExecContext(ctx, query, draftID, expectedIndex, startedAt)
	if err != nil {
		return false, fmt.Errorf("advance draft pick: %w", err)
	}

	return oneRowAffected(res)
}

func (r *DraftRepository) CompletePick(ctx context.Context, draftID string, expectedIndex int) (bool, error) {
	const query = `
UPDATE drafts
SET status = 'completed',
    current_pick_index = current_pick_index + 1,
    current_pick_started_at = NULL,
    updated_at = NOW()
WHERE id = $1
  AND status = 'in_progress'
  AND current_pick_index = $2`

	res, err := r.db.ExecContext(ctx, query, draftID, expectedIndex)
	if err != nil {
		return false, fmt.Errorf("complete draft: %w", err)
	}

	return oneRowAffected(res)
}

func (r *DraftRepository) RewindPick(ctx context.Context, draftID string, expectedIndex int, startedAt *time.Time) (bool, error) {
	const query = `
UPDATE drafts
SET current_pick_index = current_pick_index - 1,
    current_pick_started_at = $3,
    updated_at = NOW()
WHERE id = $1
  AND status IN ('in_progress', 'paused')
  AND current_pick_index = $2
  AND current_pick_index > 0`

	res, err := r.db.ExecContext(ctx, query, draftID, expectedIndex, startedAt)
	if err != nil {
		return false, fmt.Errorf("rewind draft pick: %w", err)
	}

	return oneRowAffected(res)
}

func (r *DraftRepository) TransitionStatus(ctx context.Context, draftID string, from, to draft.Status, startedAt *time.Time) (bool, error) {
	const query = `
UPDATE drafts
SET status = $3,
    current_pick_started_at = $4,
    updated_at = NOW()
WHERE id = $1
  AND status = $2`

	res, err := r.db.ExecContext(ctx, query, draftID, string(from), string(to), startedAt)
	if err != nil {
		return false, fmt.Errorf("transition draft status: %w", err)
	}

	return oneRowAffected(res)
}

func (r *DraftRepository) ResetToNotStarted(ctx context.Context, draftID string) (bool, error) {
	const query = `
UPDATE drafts
SET status = 'not_started',
    current_pick_index = 0,
    current_pick_started_at = NULL,
    updated_at = NOW()
WHERE id = $1
  AND status = 'paused'`

	res, err := r.db.ExecContext(ctx, query, draftID)
	if err != nil {
		return false, fmt.Errorf("reset draft: %w", err)
	}

	return oneRowAffected(res)
}
