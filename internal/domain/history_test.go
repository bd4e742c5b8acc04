package domain

import (
	"fmt"
	"testing"
)

func TestHistoryLogEvictsOldest(t *testing.T) {
	log := NewHistoryLog(3)
	for i := 0; i < 5; i++ {
		log.Record(HistoryEntry{ID: fmt.Sprintf("attempt-%d", i)})
	}
	if log.Len() != 3 {
		t.Fatalf("Len = %d, want 3", log.Len())
	}
	entries := log.Recent(0)
	wantIDs := []string{"attempt-4", "attempt-3", "attempt-2"}
	for i, want := range wantIDs {
		if entries[i].ID != want {
			t.Fatalf("entries[%d].ID = %q, want %q", i, entries[i].ID, want)
		}
	}
}

func TestHistoryLogRecentLimits(t *testing.T) {
	log := NewHistoryLog(10)
	for i := 0; i < 4; i++ {
		log.Record(HistoryEntry{ID: fmt.Sprintf("attempt-%d", i)})
	}

	if got := log.Recent(2); len(got) != 2 || got[0].ID != "attempt-3" {
		t.Fatalf("Recent(2) = %v", got)
	}
	if got := log.Recent(100); len(got) != 4 {
		t.Fatalf("Recent(100) len = %d, want 4", len(got))
	}
}

func TestNewHistoryLogDefaultCapacity(t *testing.T) {
	log := NewHistoryLog(0)
	for i := 0; i < HistoryCapacity*2; i++ {
		log.Record(HistoryEntry{})
	}
	if log.Len() != HistoryCapacity {
		t.Fatalf("Len = %d, want %d", log.Len(), HistoryCapacity)
	}
}

func TestCategorySourceFilename(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryCAD, "generated_plan.py"},
		{CategoryDataAnalysis, "data_analysis.py"},
		{CategoryWebApp, "web_app.py"},
		{CategoryPythonScript, "script.py"},
		{CategoryGeneral, "generated_code.py"},
		{Category("unknown"), "generated_code.py"},
	}
	for _, tt := range tests {
		if got := tt.category.SourceFilename(); got != tt.want {
			t.Fatalf("%s.SourceFilename() = %q, want %q", tt.category, got, tt.want)
		}
	}
}
