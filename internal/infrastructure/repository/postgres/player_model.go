package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/player"
)

type playerTableModel struct {
	ID          string         `db:"id"`
	DraftID     string         `db:"draft_id"`
	DisplayName string         `db:"display_name"`
	PickedBy    sql.NullString `db:"picked_by"`
	PickNumber  sql.NullInt64  `db:"pick_number"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		DraftID:     m.DraftID,
		DisplayName: m.DisplayName,
		PickedBy:    m.PickedBy.String,
		PickNumber:  int(m.PickNumber.Int64),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
