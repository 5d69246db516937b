package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/draft-engine/internal/domain/captain"
)

type CaptainRepository struct {
	db *sqlx.DB
}

func NewCaptainRepository(db *sqlx.DB) *CaptainRepository {
	return &CaptainRepository{db: db}
}

const captainColumns = `id, draft_id, display_name, draft_position, access_token,
       linked_player_id, auto_pick_enabled, created_at, updated_at`

func (r *CaptainRepository) GetByID(ctx context.Context, captainID string) (captain.Captain, bool, error) {
	query := `
SELECT ` + captainColumns + `
FROM captains
WHERE id = $1`

	var row captainTableModel
	if err := r.db.GetContext(ctx, &row, query, captainID); err != nil {
		if isNotFound(err) {
			return captain.Captain{}, false, nil
		}
		return captain.Captain{}, false, fmt.Errorf("get captain: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CaptainRepository) ListByDraft(ctx context.Context, draftID string) ([]captain.Captain, error) {
	query := `
SELECT ` + captainColumns + `
FROM captains
WHERE draft_id = $1
ORDER BY draft_position`

	var rows []captainTableModel
	if err := r.db.SelectContext(ctx, &rows, query, draftID); err != nil {
		return nil, fmt.Errorf("list captains: %w", err)
	}

	out := make([]captain.Captain, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *CaptainRepository) SetAutoPick(ctx context.Context, captainID string, enabled bool) error {
	const query = `
UPDATE captains
SET auto_pick_enabled = $2,
    updated_at = NOW()
WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, captainID, enabled); err != nil {
		return fmt.Errorf("set captain auto pick: %w", err)
	}

	return nil
}

func (r *CaptainRepository) ClearAutoPickByDraft(ctx context.Context, draftID string) error {
	const query = `
UPDATE captains
SET auto_pick_enabled = FALSE,
    updated_at = NOW()
WHERE draft_id = $1
  AND auto_pick_enabled`

	if _, err := r.db.ExecContext(ctx, query, draftID); err != nil {
		return fmt.Errorf("clear draft auto pick: %w", err)
	}

	return nil
}
