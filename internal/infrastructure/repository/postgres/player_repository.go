package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/draft-engine/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, draft_id, display_name, picked_by, pick_number, created_at, updated_at`

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByDraft(ctx context.Context, draftID string) ([]player.Player, error) {
	query := `
SELECT ` + playerColumns + `
FROM players
WHERE draft_id = $1
ORDER BY display_name, id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, draftID); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) MarkPicked(ctx context.Context, playerID, captainID string, pickNumber int) (bool, error) {
	const query = `
UPDATE players
SET picked_by = $2,
    pick_number = $3,
    updated_at = NOW()
WHERE id = $1
  AND picked_by IS NULL`

	res, err := r.db.ExecContext(ctx, query, playerID, captainID, pickNumber)
	if err != nil {
		return false, fmt.Errorf("mark player picked: %w", err)
	}

	return oneRowAffected(res)
}

func (r *PlayerRepository) ResetPicked(ctx context.Context, playerID string) error {
	const query = `
UPDATE players
SET picked_by = NULL,
    pick_number = NULL,
    updated_at = NOW()
WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, playerID); err != nil {
		return fmt.Errorf("reset player pick: %w", err)
	}

	return nil
}

func (r *PlayerRepository) ResetAllPicked(ctx context.Context, draftID string) error {
	const query = `
UPDATE players
SET picked_by = NULL,
    pick_number = NULL,
    updated_at = NOW()
WHERE draft_id = $1
  AND picked_by IS NOT NULL`

	if _, err := r.db.ExecContext(ctx, query, draftID); err != nil {
		return fmt.Errorf("reset draft players: %w", err)
	}

	return nil
}

func (r *PlayerRepository) RestorePicked(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player restore: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
UPDATE players
SET picked_by = $2,
    pick_number = $3,
    updated_at = NOW()
WHERE id = $1`

	for _, p := range players {
		if _, err := tx.ExecContext(ctx, query, p.ID, p.PickedBy, p.PickNumber); err != nil {
			return fmt.Errorf("restore player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player restore tx: %w", err)
	}

	return nil
}
