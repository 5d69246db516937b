package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/draft-engine/internal/domain/pick"
)

// PickRepository persists the append-only pick log. The unique index on
// (draft_id, pick_number) is the engine's first concurrency gate; Insert maps
// its rejection to pick.ErrDuplicatePickNumber.
type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

const pickColumns = `id, draft_id, captain_id, player_id, pick_number, is_auto_pick, created_at`

func (r *PickRepository) Insert(ctx context.Context, p pick.Pick) error {
	const query = `
INSERT INTO picks (id, draft_id, captain_id, player_id, pick_number, is_auto_pick, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.DraftID, p.CaptainID, p.PlayerID, p.PickNumber, p.IsAutoPick, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "picks_draft_id_pick_number_key") {
			return pick.ErrDuplicatePickNumber
		}
		return fmt.Errorf("insert pick: %w", err)
	}

	return nil
}

func (r *PickRepository) GetByNumber(ctx context.Context, draftID string, pickNumber int) (pick.Pick, bool, error) {
	query := `
SELECT ` + pickColumns + `
FROM picks
WHERE draft_id = $1
  AND pick_number = $2`

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, draftID, pickNumber); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PickRepository) ListByDraft(ctx context.Context, draftID string) ([]pick.Pick, error) {
	query := `
SELECT ` + pickColumns + `
FROM picks
WHERE draft_id = $1
ORDER BY pick_number`

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, draftID); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PickRepository) Delete(ctx context.Context, pickID string) error {
	const query = `DELETE FROM picks WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, pickID); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}

	return nil
}

func (r *PickRepository) DeleteByDraft(ctx context.Context, draftID string) error {
	const query = `DELETE FROM picks WHERE draft_id = $1`

	if _, err := r.db.ExecContext(ctx, query, draftID); err != nil {
		return fmt.Errorf("delete draft picks: %w", err)
	}

	return nil
}

func (r *PickRepository) InsertMany(ctx context.Context, picks []pick.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for pick restore: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
INSERT INTO picks (id, draft_id, captain_id, player_id, pick_number, is_auto_pick, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, p := range picks {
		if _, err := tx.ExecContext(ctx, query, p.ID, p.DraftID, p.CaptainID, p.PlayerID, p.PickNumber, p.IsAutoPick, p.CreatedAt); err != nil {
			return fmt.Errorf("restore pick %d: %w", p.PickNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pick restore tx: %w", err)
	}

	return nil
}
