package httpapi

import (
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/pick"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
	"github.com/riskibarqy/draft-engine/internal/domain/queue"
	"github.com/riskibarqy/draft-engine/internal/usecase"
)

type makePickRequest struct {
	CaptainID    string `json:"captain_id" validate:"required,ident"`
	PlayerID     string `json:"player_id" validate:"required,ident"`
	CaptainToken string `json:"captain_token" validate:"omitempty,max=256"`
}

type autoPickRequest struct {
	ExpectedPickIndex *int   `json:"expected_pick_index" validate:"omitempty,min=0"`
	CaptainToken      string `json:"captain_token" validate:"omitempty,max=256"`
}

type queueActionRequest struct {
	Action       string   `json:"action" validate:"required,oneof=add remove reorder"`
	CaptainID    string   `json:"captain_id" validate:"required,ident"`
	CaptainToken string   `json:"captain_token" validate:"omitempty,max=256"`
	PlayerID     string   `json:"player_id" validate:"omitempty,ident"`
	EntryID      string   `json:"entry_id" validate:"omitempty,ident"`
	EntryIDs     []string `json:"entry_ids" validate:"omitempty,max=500,dive,required,ident"`
}

type setAutoPickRequest struct {
	Enabled      bool   `json:"enabled"`
	CaptainToken string `json:"captain_token" validate:"omitempty,max=256"`
}

type pickDTO struct {
	ID         string    `json:"id"`
	DraftID    string    `json:"draft_id"`
	CaptainID  string    `json:"captain_id"`
	PlayerID   string    `json:"player_id"`
	PickNumber int       `json:"pick_number"`
	IsAutoPick bool      `json:"is_auto_pick"`
	CreatedAt  time.Time `json:"created_at"`
}

type pickResultDTO struct {
	Pick           pickDTO `json:"pick"`
	DraftCompleted bool    `json:"draft_completed"`
	NextPickIndex  int     `json:"next_pick_index"`
}

type draftDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	CurrentPickIndex int        `json:"current_pick_index"`
	TimeLimitSeconds int        `json:"time_limit_seconds"`
	PickStartedAt    *time.Time `json:"pick_started_at,omitempty"`
}

type captainDTO struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	DraftPosition   int    `json:"draft_position"`
	LinkedPlayerID  string `json:"linked_player_id,omitempty"`
	AutoPickEnabled bool   `json:"auto_pick_enabled"`
}

type draftStateDTO struct {
	Draft            draftDTO     `json:"draft"`
	Captains         []captainDTO `json:"captains"`
	CurrentCaptainID string       `json:"current_captain_id,omitempty"`
	PickDeadline     *time.Time   `json:"pick_deadline,omitempty"`
	AvailableCount   int          `json:"available_count"`
}

type playerDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	PickedBy    string `json:"picked_by,omitempty"`
	PickNumber  int    `json:"pick_number,omitempty"`
}

type queueEntryDTO struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Position int    `json:"position"`
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		ID:         p.ID,
		DraftID:    p.DraftID,
		CaptainID:  p.CaptainID,
		PlayerID:   p.PlayerID,
		PickNumber: p.PickNumber,
		IsAutoPick: p.IsAutoPick,
		CreatedAt:  p.CreatedAt,
	}
}

func outcomeToDTO(outcome usecase.PickOutcome) pickResultDTO {
	return pickResultDTO{
		Pick:           pickToDTO(outcome.Pick),
		DraftCompleted: outcome.DraftCompleted,
		NextPickIndex:  outcome.NextPickIndex,
	}
}

// Access tokens never leave the server; the captain DTO is deliberately
// narrower than the domain model.
func captainToDTO(c captain.Captain) captainDTO {
	return captainDTO{
		ID:              c.ID,
		DisplayName:     c.DisplayName,
		DraftPosition:   c.DraftPosition,
		LinkedPlayerID:  c.LinkedPlayerID,
		AutoPickEnabled: c.AutoPickEnabled,
	}
}

func stateToDTO(state usecase.DraftState) draftStateDTO {
	captains := make([]captainDTO, 0, len(state.Captains))
	for _, c := range state.Captains {
		captains = append(captains, captainToDTO(c))
	}

	return draftStateDTO{
		Draft: draftDTO{
			ID:               state.Draft.ID,
			Name:             state.Draft.Name,
			Type:             string(state.Draft.Type),
			Status:           string(state.Draft.Status),
			CurrentPickIndex: state.Draft.CurrentPickIndex,
			TimeLimitSeconds: state.Draft.TimeLimitSeconds,
			PickStartedAt:    state.Draft.CurrentPickStartedAt,
		},
		Captains:         captains,
		CurrentCaptainID: state.CurrentCaptainID,
		PickDeadline:     state.PickDeadline,
		AvailableCount:   state.AvailableCount,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		PickedBy:    p.PickedBy,
		PickNumber:  p.PickNumber,
	}
}

func queueEntryToDTO(e queue.Entry) queueEntryDTO {
	return queueEntryDTO{
		ID:       e.ID,
		PlayerID: e.PlayerID,
		Position: e.Position,
	}
}
