package captain

import "testing"

func TestValidatePositions(t *testing.T) {
	tests := []struct {
		name     string
		captains []Captain
		wantErr  bool
	}{
		{
			name: "contiguous",
			captains: []Captain{
				{ID: "a", DraftPosition: 2},
				{ID: "b", DraftPosition: 1},
				{ID: "c", DraftPosition: 3},
			},
		},
		{
			name: "duplicate position",
			captains: []Captain{
				{ID: "a", DraftPosition: 1},
				{ID: "b", DraftPosition: 1},
			},
			wantErr: true,
		},
		{
			name: "gap",
			captains: []Captain{
				{ID: "a", DraftPosition: 1},
				{ID: "b", DraftPosition: 3},
			},
			wantErr: true,
		},
		{
			name:    "empty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositions(tt.captains)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOrderedIDs(t *testing.T) {
	captains := []Captain{
		{ID: "c", DraftPosition: 3},
		{ID: "a", DraftPosition: 1},
		{ID: "b", DraftPosition: 2},
	}

	ids := OrderedIDs(captains)
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("unexpected order: %v", ids)
	}

	// Input slice order is untouched.
	if captains[0].ID != "c" {
		t.Fatalf("input slice mutated: %v", captains)
	}
}

func TestLinkedPlayerIDs(t *testing.T) {
	captains := []Captain{
		{ID: "a", LinkedPlayerID: "p9"},
		{ID: "b"},
		{ID: "c", LinkedPlayerID: "p4"},
	}

	ids := LinkedPlayerIDs(captains)
	if len(ids) != 2 || ids[0] != "p9" || ids[1] != "p4" {
		t.Fatalf("unexpected linked ids: %v", ids)
	}
}
