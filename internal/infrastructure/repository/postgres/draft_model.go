package postgres

import (
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/draft"
)

type draftTableModel struct {
	ID                   string     `db:"id"`
	OwnerID              string     `db:"owner_id"`
	Name                 string     `db:"name"`
	DraftType            string     `db:"draft_type"`
	Status               string     `db:"status"`
	CurrentPickIndex     int        `db:"current_pick_index"`
	CurrentPickStartedAt *time.Time `db:"current_pick_started_at"`
	TimeLimitSeconds     int        `db:"time_limit_seconds"`
	CreatedAt            time.Time  `db:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at"`
}

func (m draftTableModel) toDomain() draft.Draft {
	return draft.Draft{
		ID:                   m.ID,
		OwnerID:              m.OwnerID,
		Name:                 m.Name,
		Type:                 draft.Type(m.DraftType),
		Status:               draft.Status(m.Status),
		CurrentPickIndex:     m.CurrentPickIndex,
		CurrentPickStartedAt: m.CurrentPickStartedAt,
		TimeLimitSeconds:     m.TimeLimitSeconds,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
