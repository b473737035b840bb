package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "events-test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadEmptyStore(t *testing.T) {
	store := setupStore(t)
	events := store.Load(time.Now())
	if len(events) != 0 {
		t.Fatalf("expected empty collection, got %d events", len(events))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := setupStore(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	in := []model.Event{
		{ID: 1, Title: "Dentist", Description: "check-up", Date: "2026-03-20", Time: "09:30", CreatedAt: now.UnixMilli()},
		{ID: 2, Title: "Call mom", Date: "2026-03-21", Time: "18:00", Completed: true, CreatedAt: now.UnixMilli()},
	}
	if _, err := store.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := store.Load(now)
	if len(out) != 2 {
		t.Fatalf("expected 2 events, got %d", len(out))
	}
	if out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %#v", out)
	}
}

func TestLoadEvictsExpiredAndPersistsEviction(t *testing.T) {
	store := setupStore(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	in := []model.Event{
		{ID: 1, Title: "Fresh", Date: "2026-03-20", Time: "09:30", CreatedAt: now.Add(-29 * 24 * time.Hour).UnixMilli()},
		{ID: 2, Title: "Stale", Date: "2026-02-01", Time: "09:30", CreatedAt: now.Add(-31 * 24 * time.Hour).UnixMilli()},
	}
	if _, err := store.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := store.Load(now)
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only the fresh event, got %#v", out)
	}

	// Eviction must itself be durable: a second load far in the future of the
	// first must not resurrect the stale entry even without filtering.
	raw, err := store.Raw()
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if raw == nil {
		t.Fatal("expected a persisted blob after eviction")
	}
	again := store.Load(now)
	if len(again) != 1 || again[0].ID != 1 {
		t.Fatalf("eviction was not persisted: %#v", again)
	}
}

func TestLoadCorruptPayloadIsEmpty(t *testing.T) {
	store := setupStore(t)
	if _, err := store.db.Exec(
		`INSERT INTO store (key, value, revision, updated_at) VALUES (?, ?, 1, ?)`,
		StorageKey, "{not json", time.Now().UTC().Format(sqliteTimeLayout),
	); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}

	events := store.Load(time.Now())
	if len(events) != 0 {
		t.Fatalf("expected empty collection for corrupt payload, got %#v", events)
	}
}

func TestRevisionIncrementsPerSave(t *testing.T) {
	store := setupStore(t)

	rev, err := store.Revision()
	if err != nil || rev != 0 {
		t.Fatalf("expected revision 0 before first save, got rev=%d err=%v", rev, err)
	}

	first, err := store.Save([]model.Event{{ID: 1, Title: "a", Date: "2026-03-20", Time: "09:30"}})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := store.Save(nil)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second != first+1 {
		t.Fatalf("expected revision to increment: first=%d second=%d", first, second)
	}

	current, err := store.Revision()
	if err != nil {
		t.Fatalf("revision: %v", err)
	}
	if current != second {
		t.Fatalf("revision mismatch: got=%d want=%d", current, second)
	}
}

func TestMigrateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Save([]model.Event{{ID: 7, Title: "after roundtrip", Date: "2026-03-20", Time: "09:30"}}); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}
}
