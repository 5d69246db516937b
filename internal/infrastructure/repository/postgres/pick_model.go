package postgres

import (
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/pick"
)

type pickTableModel struct {
	ID         string    `db:"id"`
	DraftID    string    `db:"draft_id"`
	CaptainID  string    `db:"captain_id"`
	PlayerID   string    `db:"player_id"`
	PickNumber int       `db:"pick_number"`
	IsAutoPick bool      `db:"is_auto_pick"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m pickTableModel) toDomain() pick.Pick {
	return pick.Pick{
		ID:         m.ID,
		DraftID:    m.DraftID,
		CaptainID:  m.CaptainID,
		PlayerID:   m.PlayerID,
		PickNumber: m.PickNumber,
		IsAutoPick: m.IsAutoPick,
		CreatedAt:  m.CreatedAt,
	}
}
