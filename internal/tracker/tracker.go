// Package tracker records which event ids have already raised a reminder in
// this process. The set is deliberately volatile: after a restart, an event
// still inside its alert window fires once more.
package tracker

import "sync"

type Tracker struct {
	mu    sync.Mutex
	fired map[int64]struct{}
}

func New() *Tracker {
	return &Tracker{fired: make(map[int64]struct{})}
}

func (t *Tracker) HasFired(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.fired[id]
	return ok
}

func (t *Tracker) MarkFired(id int64) {
	t.mu.Lock()
	t.fired[id] = struct{}{}
	t.mu.Unlock()
}

// Forget drops the id so a later event reusing it is not suppressed.
func (t *Tracker) Forget(id int64) {
	t.mu.Lock()
	delete(t.fired, id)
	t.mu.Unlock()
}
