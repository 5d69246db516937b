package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/draft-engine/internal/domain/queue"
)

type QueueRepository struct {
	db *sqlx.DB
}

func NewQueueRepository(db *sqlx.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

const queueColumns = `id, captain_id, player_id, position, created_at`

func (r *QueueRepository) ListByCaptain(ctx context.Context, captainID string) ([]queue.Entry, error) {
	query := `
SELECT ` + queueColumns + `
FROM queue_entries
WHERE captain_id = $1
ORDER BY position`

	var rows []queueEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, captainID); err != nil {
		return nil, fmt.Errorf("list queue entries: %w", err)
	}

	out := make([]queue.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *QueueRepository) GetByID(ctx context.Context, entryID string) (queue.Entry, bool, error) {
	query := `
SELECT ` + queueColumns + `
FROM queue_entries
WHERE id = $1`

	var row queueEntryTableModel
	if err := r.db.GetContext(ctx, &row, query, entryID); err != nil {
		if isNotFound(err) {
			return queue.Entry{}, false, nil
		}
		return queue.Entry{}, false, fmt.Errorf("get queue entry: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *QueueRepository) Append(ctx context.Context, e queue.Entry) (queue.Entry, error) {
	// Position is assigned inside the insert so two concurrent appends for
	// the same captain cannot pick the same slot from a stale read.
	const query = `
INSERT INTO queue_entries (id, captain_id, player_id, position, created_at)
SELECT $1, $2, $3, COALESCE(MAX(position), 0) + 1, $4
FROM queue_entries
WHERE captain_id = $2
RETURNING position`

	var position int
	err := r.db.GetContext(ctx, &position, query, e.ID, e.CaptainID, e.PlayerID, e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "queue_entries_captain_id_player_id_key") {
			return queue.Entry{}, queue.ErrDuplicateEntry
		}
		return queue.Entry{}, fmt.Errorf("append queue entry: %w", err)
	}

	e.Position = position
	return e, nil
}

func (r *QueueRepository) Remove(ctx context.Context, captainID, entryID string) (bool, error) {
	const query = `
DELETE FROM queue_entries
WHERE id = $1
  AND captain_id = $2`

	res, err := r.db.ExecContext(ctx, query, entryID, captainID)
	if err != nil {
		return false, fmt.Errorf("remove queue entry: %w", err)
	}

	return oneRowAffected(res)
}

func (r *QueueRepository) Reorder(ctx context.Context, captainID string, entryIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for queue reorder: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const query = `
UPDATE queue_entries
SET position = $3
WHERE id = $1
  AND captain_id = $2`

	for i, id := range entryIDs {
		res, err := tx.ExecContext(ctx, query, id, captainID, i+1)
		if err != nil {
			return fmt.Errorf("reorder queue entry %s: %w", id, err)
		}
		moved, err := oneRowAffected(res)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("queue entry %s does not belong to captain %s", id, captainID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit queue reorder tx: %w", err)
	}

	return nil
}

func (r *QueueRepository) RemovePlayerEverywhere(ctx context.Context, draftID, playerID string) error {
	const query = `
DELETE FROM queue_entries
USING captains
WHERE queue_entries.captain_id = captains.id
  AND captains.draft_id = $1
  AND queue_entries.player_id = $2`

	if _, err := r.db.ExecContext(ctx, query, draftID, playerID); err != nil {
		return fmt.Errorf("sweep picked player from queues: %w", err)
	}

	return nil
}

func (r *QueueRepository) ClearByDraft(ctx context.Context, draftID string) error {
	const query = `
DELETE FROM queue_entries
USING captains
WHERE queue_entries.captain_id = captains.id
  AND captains.draft_id = $1`

	if _, err := r.db.ExecContext(ctx, query, draftID); err != nil {
		return fmt.Errorf("clear draft queues: %w", err)
	}

	return nil
}
