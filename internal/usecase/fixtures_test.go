package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
	"github.com/riskibarqy/draft-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-engine/internal/platform/logging"
)

const (
	fixtureDraftID = "draft-weekend"
	fixtureOwnerID = "owner-1"

	captainAlphaID    = "cap-alpha"
	captainAlphaToken = "token-alpha"
	captainBetaID     = "cap-beta"
	captainBetaToken  = "token-beta"
)

var fixtureCreatedAt = time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

// captureAuditor records emitted entries synchronously for assertions.
type captureAuditor struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (a *captureAuditor) Emit(e audit.Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *captureAuditor) last() (audit.Entry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return audit.Entry{}, false
	}
	return a.entries[len(a.entries)-1], true
}

// draftFixture wires the in-memory repositories behind one draft with two
// captains. Individual tests adjust the draft or player pool before building
// the service under test.
type draftFixture struct {
	drafts   *memory.DraftRepository
	captains *memory.CaptainRepository
	players  *memory.PlayerRepository
	picks    *memory.PickRepository
	queues   *memory.QueueRepository
	auditor  *captureAuditor
}

// newDraftFixture builds an in_progress snake draft at pick index 0 started
// at startedAt. Captain alpha picks first. Players ply-alpha and ply-beta are
// linked to the captains and therefore never available; ply-one through
// ply-four are the pickable pool.
func newDraftFixture(status draft.Status, startedAt *time.Time) *draftFixture {
	d := draft.Draft{
		ID:                   fixtureDraftID,
		OwnerID:              fixtureOwnerID,
		Name:                 "Weekend Draft",
		Type:                 draft.TypeSnake,
		Status:               status,
		CurrentPickIndex:     0,
		CurrentPickStartedAt: startedAt,
		TimeLimitSeconds:     30,
		CreatedAt:            fixtureCreatedAt,
		UpdatedAt:            fixtureCreatedAt,
	}

	captains := []captain.Captain{
		{
			ID:             captainAlphaID,
			DraftID:        fixtureDraftID,
			DisplayName:    "Alpha",
			DraftPosition:  1,
			AccessToken:    captainAlphaToken,
			LinkedPlayerID: "ply-alpha",
			CreatedAt:      fixtureCreatedAt,
			UpdatedAt:      fixtureCreatedAt,
		},
		{
			ID:             captainBetaID,
			DraftID:        fixtureDraftID,
			DisplayName:    "Beta",
			DraftPosition:  2,
			AccessToken:    captainBetaToken,
			LinkedPlayerID: "ply-beta",
			CreatedAt:      fixtureCreatedAt,
			UpdatedAt:      fixtureCreatedAt,
		},
	}

	players := make([]player.Player, 0, 6)
	for _, id := range []string{"ply-alpha", "ply-beta", "ply-one", "ply-two", "ply-three", "ply-four"} {
		players = append(players, player.Player{
			ID:          id,
			DraftID:     fixtureDraftID,
			DisplayName: id,
			CreatedAt:   fixtureCreatedAt,
			UpdatedAt:   fixtureCreatedAt,
		})
	}

	captainRepo := memory.NewCaptainRepository(captains)

	return &draftFixture{
		drafts:   memory.NewDraftRepository([]draft.Draft{d}),
		captains: captainRepo,
		players:  memory.NewPlayerRepository(players),
		picks:    memory.NewPickRepository(),
		queues:   memory.NewQueueRepository(captainRepo),
		auditor:  &captureAuditor{},
	}
}

func (f *draftFixture) pickService() *PickService {
	return NewPickService(
		f.drafts,
		f.captains,
		f.players,
		f.picks,
		f.queues,
		NewAuthorizer(f.captains),
		f.auditor,
		&seqIDGenerator{prefix: "pick"},
		logging.NewNop(),
	)
}

func (f *draftFixture) autoPickService(pickSvc *PickService) *AutoPickService {
	return NewAutoPickService(
		pickSvc,
		f.drafts,
		f.captains,
		f.players,
		f.queues,
		NewAuthorizer(f.captains),
		f.auditor,
		logging.NewNop(),
	)
}

func (f *draftFixture) adminService() *DraftAdminService {
	return NewDraftAdminService(
		f.drafts,
		f.captains,
		f.players,
		f.picks,
		f.queues,
		NewAuthorizer(f.captains),
		f.auditor,
		logging.NewNop(),
	)
}

func (f *draftFixture) queueService() *QueueService {
	return NewQueueService(
		f.drafts,
		f.captains,
		f.players,
		f.queues,
		NewAuthorizer(f.captains),
		f.auditor,
		&seqIDGenerator{prefix: "entry"},
		logging.NewNop(),
	)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
