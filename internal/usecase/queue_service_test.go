package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/draft-engine/internal/domain/draft"
)

func alphaQueueInput() QueueInput {
	return QueueInput{
		DraftID:      fixtureDraftID,
		CaptainID:    captainAlphaID,
		CaptainToken: captainAlphaToken,
	}
}

func TestQueueService_AddAssignsDensePositions(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	first, err := service.Add(t.Context(), alphaQueueInput(), "ply-one")
	if err != nil {
		t.Fatalf("add first entry: %v", err)
	}
	if first.Position != 1 {
		t.Fatalf("expected position 1, got %d", first.Position)
	}

	second, err := service.Add(t.Context(), alphaQueueInput(), "ply-two")
	if err != nil {
		t.Fatalf("add second entry: %v", err)
	}
	if second.Position != 2 {
		t.Fatalf("expected position 2, got %d", second.Position)
	}

	entry, ok := fx.auditor.last()
	if !ok || entry.Action != "queue_add" {
		t.Fatalf("expected queue_add audit entry, got %+v", entry)
	}
}

func TestQueueService_AddRejections(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	if _, err := service.Add(t.Context(), alphaQueueInput(), "ply-one"); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	if _, err := service.Add(t.Context(), alphaQueueInput(), "ply-one"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate player, got %v", err)
	}
	if _, err := service.Add(t.Context(), alphaQueueInput(), "ply-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
	if _, err := service.Add(t.Context(), alphaQueueInput(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty player id, got %v", err)
	}
}

func TestQueueService_CaptainCannotTouchForeignQueue(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	// Alpha's token against beta's queue.
	input := QueueInput{
		DraftID:      fixtureDraftID,
		CaptainID:    captainBetaID,
		CaptainToken: captainAlphaToken,
	}
	if _, err := service.Add(t.Context(), input, "ply-one"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestQueueService_OwnerManagesAnyQueue(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	input := QueueInput{
		DraftID:       fixtureDraftID,
		CaptainID:     captainBetaID,
		OwnerIdentity: fixtureOwnerID,
	}

	added, err := service.Add(t.Context(), input, "ply-three")
	if err != nil {
		t.Fatalf("owner add: %v", err)
	}

	if err := service.Remove(t.Context(), input, added.ID); err != nil {
		t.Fatalf("owner remove: %v", err)
	}
}

func TestQueueService_RemoveUnknownEntry(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	if err := service.Remove(t.Context(), alphaQueueInput(), "entry-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := service.Remove(t.Context(), alphaQueueInput(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQueueService_Reorder(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	var ids []string
	for _, playerID := range []string{"ply-one", "ply-two", "ply-three"} {
		e, err := service.Add(t.Context(), alphaQueueInput(), playerID)
		if err != nil {
			t.Fatalf("add entry: %v", err)
		}
		ids = append(ids, e.ID)
	}

	reversed := []string{ids[2], ids[1], ids[0]}
	if err := service.Reorder(t.Context(), alphaQueueInput(), reversed); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	entries, err := service.List(t.Context(), alphaQueueInput())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, wantID := range reversed {
		if entries[i].ID != wantID {
			t.Fatalf("position %d: expected %s, got %s", i+1, wantID, entries[i].ID)
		}
		if entries[i].Position != i+1 {
			t.Fatalf("position %d: expected dense position, got %d", i+1, entries[i].Position)
		}
	}
}

func TestQueueService_Reorder_SweepsStaleEntries(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	var ids []string
	for _, playerID := range []string{"ply-one", "ply-two", "ply-three"} {
		e, err := service.Add(t.Context(), alphaQueueInput(), playerID)
		if err != nil {
			t.Fatalf("add entry: %v", err)
		}
		ids = append(ids, e.ID)
	}

	// ply-two gets picked by the other side without the usual queue sweep,
	// leaving a stale entry behind.
	if _, err := fx.players.MarkPicked(t.Context(), "ply-two", captainBetaID, 1); err != nil {
		t.Fatalf("mark player: %v", err)
	}

	// The caller reorders what GET shows: only the two live entries.
	want := []string{ids[2], ids[0]}
	if err := service.Reorder(t.Context(), alphaQueueInput(), want); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	entries, err := service.List(t.Context(), alphaQueueInput())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for i, wantID := range want {
		if entries[i].ID != wantID {
			t.Fatalf("position %d: expected %s, got %s", i+1, wantID, entries[i].ID)
		}
		if entries[i].Position != i+1 {
			t.Fatalf("position %d: expected dense position, got %d", i+1, entries[i].Position)
		}
	}

	stored, err := fx.queues.ListByCaptain(t.Context(), captainAlphaID)
	if err != nil {
		t.Fatalf("list stored entries: %v", err)
	}
	for _, e := range stored {
		if e.ID == ids[1] {
			t.Fatal("stale entry should have been swept during reorder")
		}
	}
}

func TestQueueService_ReorderRejections(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	var ids []string
	for _, playerID := range []string{"ply-one", "ply-two"} {
		e, err := service.Add(t.Context(), alphaQueueInput(), playerID)
		if err != nil {
			t.Fatalf("add entry: %v", err)
		}
		ids = append(ids, e.ID)
	}

	if err := service.Reorder(t.Context(), alphaQueueInput(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty ordering, got %v", err)
	}
	if err := service.Reorder(t.Context(), alphaQueueInput(), []string{ids[0]}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for partial ordering, got %v", err)
	}
	if err := service.Reorder(t.Context(), alphaQueueInput(), []string{ids[0], "entry-ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign entry id, got %v", err)
	}
	if err := service.Reorder(t.Context(), alphaQueueInput(), []string{ids[0], ids[0]}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicated entry id, got %v", err)
	}
}

func TestQueueService_ListFiltersUnavailablePlayers(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	service := fx.queueService()

	for _, playerID := range []string{"ply-one", "ply-two"} {
		if _, err := service.Add(t.Context(), alphaQueueInput(), playerID); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	// ply-one gets picked elsewhere; the stored entry survives but reads
	// hide it.
	if _, err := fx.players.MarkPicked(t.Context(), "ply-one", captainBetaID, 1); err != nil {
		t.Fatalf("mark player: %v", err)
	}

	entries, err := service.List(t.Context(), alphaQueueInput())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerID != "ply-two" {
		t.Fatalf("expected only ply-two to remain visible, got %+v", entries)
	}
}
