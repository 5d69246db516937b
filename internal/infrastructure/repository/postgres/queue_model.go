package postgres

import (
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/queue"
)

type queueEntryTableModel struct {
	ID        string    `db:"id"`
	CaptainID string    `db:"captain_id"`
	PlayerID  string    `db:"player_id"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

func (m queueEntryTableModel) toDomain() queue.Entry {
	return queue.Entry{
		ID:        m.ID,
		CaptainID: m.CaptainID,
		PlayerID:  m.PlayerID,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
	}
}
