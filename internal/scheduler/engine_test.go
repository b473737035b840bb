package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/notify"
	"github.com/zayedkhan1/Event-Reminder-application/internal/tracker"
)

type sliceSource struct {
	events []model.Event
}

func (s *sliceSource) All() []model.Event { return s.events }

type recordingNotifier struct {
	sent []string
	err  error
}

func (n *recordingNotifier) Send(title, body string) error {
	n.sent = append(n.sent, body)
	return n.err
}

// scheduledAt is 2026-03-14 09:30 UTC for every fixture event.
var fixtureT = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixtureEvent(id int64) model.Event {
	return model.Event{ID: id, Title: "standup", Date: "2026-03-14", Time: "09:30"}
}

func newTestEngine(src *sliceSource, tr *tracker.Tracker, n notify.Notifier, buffer int) *Engine {
	e := NewEngine(src, tr, n, buffer)
	e.SetLocation(time.UTC)
	return e
}

func drain(t *testing.T, ch <-chan model.Event) []model.Event {
	t.Helper()
	out := make([]model.Event, 0)
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestWindowBoundariesAreInclusive(t *testing.T) {
	cases := []struct {
		name   string
		offset time.Duration
		fires  bool
	}{
		{"61s early", -61 * time.Second, false},
		{"60s early", -60 * time.Second, true},
		{"on the instant", 0, true},
		{"60s late", 60 * time.Second, true},
		{"61s late", 61 * time.Second, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := &sliceSource{events: []model.Event{fixtureEvent(1)}}
			e := newTestEngine(src, tracker.New(), nil, 4)

			e.tick(fixtureT.Add(tc.offset))

			got := drain(t, e.out)
			if tc.fires && len(got) != 1 {
				t.Fatalf("expected a firing at offset %v, got %d", tc.offset, len(got))
			}
			if !tc.fires && len(got) != 0 {
				t.Fatalf("expected no firing at offset %v, got %#v", tc.offset, got)
			}
		})
	}
}

func TestAtMostOnceAcrossTicks(t *testing.T) {
	src := &sliceSource{events: []model.Event{fixtureEvent(1)}}
	e := newTestEngine(src, tracker.New(), nil, 16)

	// Every tick of a full window pass: 13 ticks, 10s apart.
	for i := -6; i <= 6; i++ {
		e.tick(fixtureT.Add(time.Duration(i) * 10 * time.Second))
	}

	got := drain(t, e.out)
	if len(got) != 1 {
		t.Fatalf("expected exactly one emission over the window, got %d", len(got))
	}
	if got[0].ID != 1 {
		t.Fatalf("expected the full event on the due channel, got %#v", got[0])
	}
}

func TestCompletedEventNeverFires(t *testing.T) {
	ev := fixtureEvent(1)
	ev.Completed = true
	src := &sliceSource{events: []model.Event{ev}}
	e := newTestEngine(src, tracker.New(), nil, 4)

	e.tick(fixtureT)

	if got := drain(t, e.out); len(got) != 0 {
		t.Fatalf("completed event must not fire, got %#v", got)
	}
}

func TestPreFiredEventIsSuppressed(t *testing.T) {
	tr := tracker.New()
	tr.MarkFired(1)
	src := &sliceSource{events: []model.Event{fixtureEvent(1)}}
	e := newTestEngine(src, tr, nil, 4)

	e.tick(fixtureT)

	if got := drain(t, e.out); len(got) != 0 {
		t.Fatalf("pre-fired event must stay suppressed, got %#v", got)
	}
}

func TestMalformedEventDoesNotAbortTick(t *testing.T) {
	bad := model.Event{ID: 1, Title: "broken", Date: "garbage", Time: "09:30"}
	good := fixtureEvent(2)
	src := &sliceSource{events: []model.Event{bad, good}}
	tr := tracker.New()
	e := newTestEngine(src, tr, nil, 4)

	e.tick(fixtureT)

	got := drain(t, e.out)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected the healthy event to fire past the broken one, got %#v", got)
	}
	if tr.HasFired(1) {
		t.Fatal("broken event must not be marked fired")
	}
	// The broken event is only skipped per tick, never burned.
	fixed := bad
	fixed.Date = "2026-03-14"
	src.events = []model.Event{fixed, good}
	e.tick(fixtureT)
	if got := drain(t, e.out); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("repaired event should fire on a later tick, got %#v", got)
	}
}

func TestNotifierFailureDoesNotBlockSignal(t *testing.T) {
	n := &recordingNotifier{err: errors.New("no permission")}
	src := &sliceSource{events: []model.Event{fixtureEvent(1)}}
	tr := tracker.New()
	e := newTestEngine(src, tr, n, 4)

	e.tick(fixtureT)

	if len(n.sent) != 1 || n.sent[0] != "standup" {
		t.Fatalf("expected one notification attempt with the event title, got %#v", n.sent)
	}
	if got := drain(t, e.out); len(got) != 1 {
		t.Fatal("the in-app due signal must fire even when the OS notification fails")
	}
	if !tr.HasFired(1) {
		t.Fatal("event must be marked fired despite the notification failure")
	}
}

func TestEvaluationFollowsInsertionOrder(t *testing.T) {
	later := model.Event{ID: 1, Title: "later", Date: "2026-03-14", Time: "09:31"}
	sooner := model.Event{ID: 2, Title: "sooner", Date: "2026-03-14", Time: "09:30"}
	src := &sliceSource{events: []model.Event{later, sooner}}
	e := newTestEngine(src, tracker.New(), nil, 4)

	e.tick(fixtureT.Add(30 * time.Second))

	got := drain(t, e.out)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected insertion-order emission, got %#v", got)
	}
}

func TestFullBufferDropsInsteadOfBlocking(t *testing.T) {
	src := &sliceSource{events: []model.Event{fixtureEvent(1), fixtureEvent(2), fixtureEvent(3)}}
	e := newTestEngine(src, tracker.New(), nil, 1)

	e.tick(fixtureT)

	if e.Dropped() != 2 {
		t.Fatalf("expected 2 dropped emissions with buffer 1, got %d", e.Dropped())
	}
}

func TestStartStopLifecycle(t *testing.T) {
	// The running loop ticks on the wall clock, so the fixture must be due now.
	now := time.Now().UTC()
	due := model.Event{
		ID:    1,
		Title: "standup",
		Date:  now.Format(model.DateLayout),
		Time:  now.Format(model.TimeLayout),
	}
	src := &sliceSource{events: []model.Event{due}}
	e := newTestEngine(src, tracker.New(), nil, 4)
	e.SetInterval(10 * time.Millisecond)
	e.Start()
	e.Start() // second start is a no-op

	select {
	case ev := <-e.C():
		if ev.ID != 1 {
			t.Fatalf("unexpected event: %#v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a due event")
	}

	e.Stop()
	e.Stop() // second stop is a no-op
	if _, open := <-e.C(); open {
		// A buffered leftover is fine; the channel must end up closed.
		if _, open := <-e.C(); open {
			t.Fatal("expected closed due channel after Stop")
		}
	}
}
