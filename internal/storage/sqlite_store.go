package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps the event blob in a single-row key/value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteStore{db: db, key: StorageKey}, nil
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads and decodes the blob, evicting expired events. It fails soft:
// every error path degrades to an empty collection.
func (s *SQLiteStore) Load(now time.Time) []model.Event {
	raw, err := s.Raw()
	if err != nil {
		applog.Error("storage: read failed, starting empty", err)
		return []model.Event{}
	}
	if raw == nil {
		return []model.Event{}
	}

	var events []model.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		applog.Error("storage: corrupt payload, starting empty", err)
		return []model.Event{}
	}

	kept := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.Expired(now) {
			continue
		}
		kept = append(kept, ev)
	}
	if len(kept) != len(events) {
		if _, err := s.Save(kept); err != nil {
			applog.Error("storage: persisting retention eviction failed", err)
		}
	}
	return kept
}

// Save atomically replaces the blob and bumps the revision counter.
func (s *SQLiteStore) Save(events []model.Event) (int64, error) {
	if events == nil {
		events = []model.Event{}
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return 0, fmt.Errorf("encode events: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO store (key, value, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			revision = store.revision + 1,
			updated_at = excluded.updated_at`,
		s.key, string(payload), time.Now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("write events: %w", err)
	}

	var revision int64
	if err := tx.QueryRow(`SELECT revision FROM store WHERE key = ?`, s.key).Scan(&revision); err != nil {
		return 0, fmt.Errorf("read revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	return revision, nil
}

// Raw returns the stored payload verbatim, nil when no blob exists yet.
func (s *SQLiteStore) Raw() ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM store WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Revision returns the current write counter, 0 when no blob exists yet.
func (s *SQLiteStore) Revision() (int64, error) {
	var revision int64
	err := s.db.QueryRow(`SELECT revision FROM store WHERE key = ?`, s.key).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return revision, nil
}
