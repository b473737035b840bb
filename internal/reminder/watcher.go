package reminder

import (
	"sync"
	"time"

	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
	"github.com/zayedkhan1/Event-Reminder-application/internal/repository"
	"github.com/zayedkhan1/Event-Reminder-application/internal/storage"
)

// watcher polls the store revision and reports writes this instance did not
// make. Local saves record their own revision in the repository, so the only
// revisions treated as external are ones no local write produced. Last writer
// wins; there is no merging.
type watcher struct {
	store    storage.Store
	repo     *repository.Repository
	interval time.Duration
	apply    func(raw []byte)

	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
}

func newWatcher(store storage.Store, repo *repository.Repository, interval time.Duration, apply func(raw []byte)) *watcher {
	return &watcher{
		store:    store,
		repo:     repo,
		interval: interval,
		apply:    apply,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (w *watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.loop()
}

func (w *watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()
	<-w.doneCh
}

func (w *watcher) loop() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-w.stopCh:
			return
		}
	}
}

func (w *watcher) poll() {
	rev, err := w.store.Revision()
	if err != nil {
		applog.Debug("sync: revision check failed", "err", err)
		return
	}
	if rev == w.repo.LastSavedRevision() {
		return
	}
	raw, err := w.store.Raw()
	if err != nil {
		applog.Debug("sync: raw read failed", "err", err)
		return
	}
	applog.Info("sync: store changed externally", "revision", rev)
	w.apply(raw)
	w.repo.NoteRevision(rev)
}
