package player

import "testing"

func TestFilterAvailable(t *testing.T) {
	players := []Player{
		{ID: "p1"},
		{ID: "p2", PickedBy: "c1", PickNumber: 1},
		{ID: "p3"},
		{ID: "p4"},
		{ID: "p5", PickedBy: "c2", PickNumber: 2},
	}
	linked := []string{"p3"}

	available := FilterAvailable(players, linked)
	if len(available) != 2 {
		t.Fatalf("expected 2 available players, got %d", len(available))
	}
	if available[0].ID != "p1" || available[1].ID != "p4" {
		t.Fatalf("unexpected available set: %v", available)
	}

	// Disjoint picked/linked sets: size == total - picked - linked.
	if got := CountAvailable(players, linked); got != len(players)-2-1 {
		t.Fatalf("expected count %d, got %d", len(players)-2-1, got)
	}
}

func TestFilterAvailable_LinkedAndPickedOverlap(t *testing.T) {
	// A linked player that somehow carries pick fields is excluded once, not
	// double counted.
	players := []Player{
		{ID: "p1", PickedBy: "c1", PickNumber: 1},
		{ID: "p2"},
	}

	if got := CountAvailable(players, []string{"p1"}); got != 1 {
		t.Fatalf("expected 1 available, got %d", got)
	}
}

func TestFilterAvailable_Empty(t *testing.T) {
	if got := FilterAvailable(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
