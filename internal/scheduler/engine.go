// Package scheduler polls the event collection on a fixed period and decides
// which events have entered their alert window. Coarse polling is deliberate:
// a 10s tick against a ±60s window sees every live event at least six times,
// which makes missed detection vanishingly unlikely without one timer per
// event.
package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/notify"
)

const (
	// DefaultTickInterval is the polling period.
	DefaultTickInterval = 10 * time.Second
	// AlertWindow is the half-width of the symmetric capture window around an
	// event's scheduled instant. Boundaries are inclusive.
	AlertWindow = 60 * time.Second
)

// EventSource yields the current collection in insertion order.
type EventSource interface {
	All() []model.Event
}

// FiredTracker guards at-most-once emission per event id.
type FiredTracker interface {
	HasFired(id int64) bool
	MarkFired(id int64)
}

type Engine struct {
	mu       sync.Mutex
	source   EventSource
	tracker  FiredTracker
	notifier notify.Notifier
	interval time.Duration
	loc      *time.Location
	out      chan model.Event
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	dropped  uint64
}

func NewEngine(source EventSource, tracker FiredTracker, notifier notify.Notifier, bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &Engine{
		source:   source,
		tracker:  tracker,
		notifier: notifier,
		interval: DefaultTickInterval,
		loc:      time.Local,
		out:      make(chan model.Event, bufferSize),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetInterval overrides the polling period. Only effective before Start.
func (e *Engine) SetInterval(d time.Duration) {
	e.mu.Lock()
	if !e.started && d > 0 {
		e.interval = d
	}
	e.mu.Unlock()
}

// SetLocation overrides the zone events are interpreted in. Only effective
// before Start.
func (e *Engine) SetLocation(loc *time.Location) {
	e.mu.Lock()
	if !e.started && loc != nil {
		e.loc = loc
	}
	e.mu.Unlock()
}

// C is the stream of events that entered alert state, at most one emission
// per event per process lifetime.
func (e *Engine) C() <-chan model.Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Dropped counts due events lost to a full output buffer.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			e.tick(now)
		case <-e.stopCh:
			return
		}
	}
}

// tick evaluates every event against the alert window. A failure on one event
// never aborts the rest of the pass.
func (e *Engine) tick(now time.Time) {
	for _, ev := range e.source.All() {
		if ev.Completed || e.tracker.HasFired(ev.ID) {
			continue
		}
		at, err := ev.ScheduledAt(e.loc)
		if err != nil {
			applog.Debug("scheduler: skipping event with malformed timestamp", "id", ev.ID, "err", err)
			continue
		}
		delta := at.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta > AlertWindow {
			continue
		}

		if err := e.notifier.Send("Event Reminder", ev.Title); err != nil {
			applog.Info("scheduler: desktop notification failed", "id", ev.ID, "err", err)
		}
		e.tracker.MarkFired(ev.ID)

		select {
		case e.out <- ev:
		default:
			atomic.AddUint64(&e.dropped, 1)
		}
	}
}
