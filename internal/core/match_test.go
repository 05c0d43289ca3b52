package core

import "testing"

func TestProfessionIndex_Resolve(t *testing.T) {
	ix := NewProfessionIndex()
	ix.Add(Profession{ID: 10, MainGroup: "Tech", SecondaryLabel: "Developer"})
	ix.Add(Profession{ID: 11, MainGroup: "Marketing", SecondaryLabel: "Developer"})
	ix.Add(Profession{ID: 12, MainGroup: "Creative", SecondaryLabel: "Designer"})
	ix.Add(Profession{ID: 13, MainGroup: "Tech", SecondaryLabel: "Developer"})

	tests := []struct {
		name      string
		mainGroup string
		label     string
		wantID    int64
		wantOK    bool
	}{
		{"pair match", "Tech", "Developer", 10, true},
		{"pair match second group", "Marketing", "Developer", 11, true},
		{"label only takes first inserted", "", "Developer", 10, true},
		{"label only unique", "", "Designer", 12, true},
		{"unknown label", "", "Nonexistent Role", 0, false},
		{"unknown label with group", "Tech", "Nonexistent Role", 0, false},
		{"group given but wrong", "Writing", "Designer", 0, false},
		{"matching is case sensitive", "tech", "developer", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ix.Resolve(tt.mainGroup, tt.label)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("Resolve(%q, %q) = (%d, %v), want (%d, %v)",
					tt.mainGroup, tt.label, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}

	if ix.Len() != 4 {
		t.Errorf("Len() = %d, want 4", ix.Len())
	}
}

func TestProfessionIndex_Empty(t *testing.T) {
	ix := NewProfessionIndex()
	if _, ok := ix.Resolve("Tech", "Developer"); ok {
		t.Error("empty index resolved a profession")
	}
	if _, ok := ix.Resolve("", "Developer"); ok {
		t.Error("empty index resolved a label")
	}
}
