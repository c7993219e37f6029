package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/glyphball/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func session(widgetID string, cleared int) SessionEntry {
	return SessionEntry{
		WidgetID: widgetID,
		SessionStats: core.SessionStats{
			Frames:       cleared * 10,
			CellsCleared: cleared,
			PaddleHits:   cleared / 2,
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveSession(session("glyphball", 5)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	entries, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 session after reopen, got %d", len(entries))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	want := SessionEntry{
		WidgetID: "glyphball",
		User:     "alice",
		Seed:     42,
		SessionStats: core.SessionStats{
			Frames:        600,
			CellsCleared:  40,
			Regenerations: 1,
			PaddleHits:    7,
			Respawns:      2,
			Flattens:      3,
		},
	}
	id, err := store.SaveSession(want)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	entries, err := store.TopSessions("glyphball", 10)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(entries))
	}

	got := entries[0]
	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.WidgetID != want.WidgetID || got.User != want.User || got.Seed != want.Seed {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.SessionStats != want.SessionStats {
		t.Errorf("stats = %+v, want %+v", got.SessionStats, want.SessionStats)
	}
}

func TestStoreTopSessionsOrder(t *testing.T) {
	store := openTestStore(t)

	for _, n := range []int{10, 50, 30} {
		if _, err := store.SaveSession(session("glyphball", n)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}
	if _, err := store.SaveSession(session("glyphball_attract", 999)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	entries, err := store.TopSessions("glyphball", 2)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(entries))
	}
	if entries[0].CellsCleared != 50 || entries[1].CellsCleared != 30 {
		t.Errorf("order = %d, %d; want 50, 30", entries[0].CellsCleared, entries[1].CellsCleared)
	}
}

func TestStoreRecentSessions(t *testing.T) {
	store := openTestStore(t)

	for i, id := range []string{"glyphball", "glyphball_attract", "glyphball"} {
		if _, err := store.SaveSession(session(id, i)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	entries, err := store.RecentSessions(0)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(entries))
	}
	if entries[0].CellsCleared != 2 || entries[2].CellsCleared != 0 {
		t.Error("RecentSessions should return newest first")
	}
}

func TestStoreTotals(t *testing.T) {
	store := openTestStore(t)

	totals, n, err := store.Totals("glyphball")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if n != 0 || totals != (core.SessionStats{}) {
		t.Errorf("empty totals = %+v (%d sessions)", totals, n)
	}

	for _, c := range []int{4, 6} {
		if _, err := store.SaveSession(session("glyphball", c)); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	totals, n, err = store.Totals("glyphball")
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("sessions = %d, want 2", n)
	}
	if totals.CellsCleared != 10 || totals.Frames != 100 || totals.PaddleHits != 5 {
		t.Errorf("totals = %+v", totals)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(session("glyphball", 1)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := store.SaveSession(session("glyphball_attract", 1)); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	if err := store.ClearSessions("glyphball"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	entries, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].WidgetID != "glyphball_attract" {
		t.Errorf("unexpected sessions after clear: %+v", entries)
	}
}
