package storage

import (
	"time"

	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
)

// StorageKey is the single durable key the event collection lives under.
const StorageKey = "event_reminder_events"

// Store is the durable home of the event collection. The whole collection is
// one JSON blob under one key; every Save overwrites it.
//
// Load never fails: a missing, corrupt or unreadable blob is an empty
// collection. Load also applies retention filtering against now, and if any
// event was evicted the filtered set is written back so the eviction sticks.
//
// Revision is a monotonic write counter. It exists so another instance of the
// same client can be detected mutating the store underneath us.
type Store interface {
	Load(now time.Time) []model.Event
	Save(events []model.Event) (revision int64, err error)
	Raw() ([]byte, error)
	Revision() (int64, error)
}
