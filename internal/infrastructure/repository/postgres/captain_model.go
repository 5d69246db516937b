package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/captain"
)

type captainTableModel struct {
	ID              string         `db:"id"`
	DraftID         string         `db:"draft_id"`
	DisplayName     string         `db:"display_name"`
	DraftPosition   int            `db:"draft_position"`
	AccessToken     string         `db:"access_token"`
	LinkedPlayerID  sql.NullString `db:"linked_player_id"`
	AutoPickEnabled bool           `db:"auto_pick_enabled"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (m captainTableModel) toDomain() captain.Captain {
	return captain.Captain{
		ID:              m.ID,
		DraftID:         m.DraftID,
		DisplayName:     m.DisplayName,
		DraftPosition:   m.DraftPosition,
		AccessToken:     m.AccessToken,
		LinkedPlayerID:  m.LinkedPlayerID.String,
		AutoPickEnabled: m.AutoPickEnabled,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
