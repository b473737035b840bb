// Package repository owns the authoritative in-memory event collection.
// Every mutation is written through to the durable store as a full overwrite;
// a failed write is logged and swallowed because the in-memory state stays
// authoritative for the running session.
package repository

import (
	"sync"
	"time"

	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/storage"
	"github.com/zayedkhan1/Event-Reminder-application/internal/tracker"
)

type Repository struct {
	mu      sync.Mutex
	events  []model.Event
	store   storage.Store
	tracker *tracker.Tracker
	lastRev int64
}

func New(store storage.Store, tr *tracker.Tracker) *Repository {
	return &Repository{
		events:  []model.Event{},
		store:   store,
		tracker: tr,
	}
}

// Load replaces the collection with whatever the store holds. Retention
// filtering happens inside the store.
func (r *Repository) Load(now time.Time) {
	events := r.store.Load(now)

	r.mu.Lock()
	r.events = events
	if rev, err := r.store.Revision(); err == nil {
		r.lastRev = rev
	}
	r.mu.Unlock()
}

// Add inserts a new event. The caller guarantees id uniqueness.
func (r *Repository) Add(ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.save()
}

// Update replaces the event matching id in place. A missing id is a silent
// no-op.
func (r *Repository) Update(id int64, ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i] = ev
			r.save()
			return
		}
	}
}

// Remove deletes the matching event and clears its fired marker so a later
// event reusing the id can alert again.
func (r *Repository) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.events[:0]
	for _, ev := range r.events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	if len(kept) == len(r.events) {
		return
	}
	r.events = kept
	r.tracker.Forget(id)
	r.save()
}

// ToggleCompleted flips the completed flag and marks the event as fired, so a
// just-completed event never retroactively alerts once unticked.
func (r *Repository) ToggleCompleted(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].Completed = !r.events[i].Completed
			r.tracker.MarkFired(id)
			r.save()
			return
		}
	}
}

// All returns a snapshot of the collection in insertion order.
func (r *Repository) All() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Get returns the event matching id.
func (r *Repository) Get(id int64) (model.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return model.Event{}, false
}

// Len returns the collection size.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Replace swaps the collection wholesale with state that arrived from the
// store, so it is not written back.
func (r *Repository) Replace(events []model.Event) {
	if events == nil {
		events = []model.Event{}
	}
	r.mu.Lock()
	r.events = events
	r.mu.Unlock()
}

// LastSavedRevision is the store revision of the most recent local write.
// The cross-instance watcher uses it to tell its own writes apart from a
// concurrent instance's.
func (r *Repository) LastSavedRevision() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRev
}

// NoteRevision records a revision the watcher has already applied.
func (r *Repository) NoteRevision(rev int64) {
	r.mu.Lock()
	if rev > r.lastRev {
		r.lastRev = rev
	}
	r.mu.Unlock()
}

// save writes the full collection through to the store. Callers hold r.mu.
func (r *Repository) save() {
	out := make([]model.Event, len(r.events))
	copy(out, r.events)
	rev, err := r.store.Save(out)
	if err != nil {
		applog.Error("repository: durable save failed", err, "events", len(out))
		return
	}
	r.lastRev = rev
}
