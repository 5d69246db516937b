package memory

import (
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
)

// Seed data for local development without a database.
const (
	DraftIDWeekendFutsal = "weekend-futsal-2026"
	SeedOwnerID          = "owner-rizky"
)

func SeedDrafts() []draft.Draft {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	return []draft.Draft{
		{
			ID:               DraftIDWeekendFutsal,
			OwnerID:          SeedOwnerID,
			Name:             "Weekend Futsal Draft",
			Type:             draft.TypeSnake,
			Status:           draft.StatusNotStarted,
			TimeLimitSeconds: 60,
			CreatedAt:        created,
			UpdatedAt:        created,
		},
	}
}

func SeedCaptains() []captain.Captain {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	return []captain.Captain{
		{
			ID:             "cap-andri",
			DraftID:        DraftIDWeekendFutsal,
			DisplayName:    "Andri",
			DraftPosition:  1,
			AccessToken:    "local-token-andri",
			LinkedPlayerID: "ply-andri",
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		{
			ID:             "cap-bima",
			DraftID:        DraftIDWeekendFutsal,
			DisplayName:    "Bima",
			DraftPosition:  2,
			AccessToken:    "local-token-bima",
			LinkedPlayerID: "ply-bima",
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		{
			ID:             "cap-citra",
			DraftID:        DraftIDWeekendFutsal,
			DisplayName:    "Citra",
			DraftPosition:  3,
			AccessToken:    "local-token-citra",
			LinkedPlayerID: "ply-citra",
			CreatedAt:      created,
			UpdatedAt:      created,
		},
	}
}

func SeedPlayers() []player.Player {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	names := map[string]string{
		"ply-andri":  "Andri",
		"ply-bima":   "Bima",
		"ply-citra":  "Citra",
		"ply-dewi":   "Dewi",
		"ply-eko":    "Eko",
		"ply-fajar":  "Fajar",
		"ply-gita":   "Gita",
		"ply-hendra": "Hendra",
		"ply-indra":  "Indra",
		"ply-joko":   "Joko",
		"ply-kurnia": "Kurnia",
		"ply-lukman": "Lukman",
	}

	out := make([]player.Player, 0, len(names))
	for id, name := range names {
		out = append(out, player.Player{
			ID:          id,
			DraftID:     DraftIDWeekendFutsal,
			DisplayName: name,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}

	return out
}
