package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/arcgen/internal/domain"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := newSQLiteStoreAt(filepath.Join(t.TempDir(), "history.db"))
	if store.db == nil {
		t.Fatal("sqlite store did not open")
	}
	t.Cleanup(func() { _ = store.db.Close() })
	return store
}

func sampleEntry(id string, ts time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        id,
		Timestamp: ts,
		Prompt:    "draw a floor plan " + id,
		Category:  domain.CategoryCAD,
		Model:     "flash",
		Source:    "import ezdxf",
		Success:   true,
		ExitCode:  0,
	}
}

func TestSQLiteSaveAndRecords(t *testing.T) {
	store := newTestSQLiteStore(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		entry := sampleEntry(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := store.Save(entry); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].ID != "id-2" || records[2].ID != "id-0" {
		t.Fatalf("order = [%s ... %s], want newest first", records[0].ID, records[2].ID)
	}
	if !records[0].Success || records[0].Category != domain.CategoryCAD {
		t.Fatalf("round trip lost fields: %+v", records[0])
	}
}

func TestSQLiteRecordsLimitAndSearch(t *testing.T) {
	store := newTestSQLiteStore(t)
	base := time.Now().UTC()
	if err := store.Save(sampleEntry("alpha", base)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(sampleEntry("beta", base.Add(time.Minute))); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := store.Records(1, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].ID != "beta" {
		t.Fatalf("limited records = %v", records)
	}

	records, err = store.Records(0, "alpha")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].ID != "alpha" {
		t.Fatalf("searched records = %v", records)
	}
}

func TestSQLiteSaveIsIdempotentPerID(t *testing.T) {
	store := newTestSQLiteStore(t)
	entry := sampleEntry("same", time.Now().UTC())
	if err := store.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entry.Model = "pro"
	if err := store.Save(entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].Model != "pro" {
		t.Fatalf("records = %v, want one updated row", records)
	}
}

func TestSQLiteClear(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.Save(sampleEntry("x", time.Now().UTC())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records after clear = %v", records)
	}
}

func TestSQLitePruneOlderThan(t *testing.T) {
	store := newTestSQLiteStore(t)
	old := sampleEntry("old", time.Now().UTC().AddDate(0, 0, -30))
	fresh := sampleEntry("fresh", time.Now().UTC())
	if err := store.Save(old); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(fresh); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.PruneOlderThan(7); err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].ID != "fresh" {
		t.Fatalf("records = %v, want only the fresh entry", records)
	}
}

func TestFileStoreFallback(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		if err := store.Save(sampleEntry(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	records, err := store.Records(2, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 2 || records[0].ID != "id-2" {
		t.Fatalf("records = %v, want newest first with limit", records)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err = store.Records(0, "")
	if err != nil {
		t.Fatalf("Records after Clear: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %v, want empty", records)
	}
}
