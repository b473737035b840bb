// Package reminder assembles the engine the UI layer talks to: the event
// repository, the fired-id tracker, the polling scheduler and the
// cross-instance watcher, constructed once at startup and torn down as a
// unit.
package reminder

import (
	"encoding/json"
	"sync"
	"time"

	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/notify"
	"github.com/zayedkhan1/Event-Reminder-application/internal/repository"
	"github.com/zayedkhan1/Event-Reminder-application/internal/scheduler"
	"github.com/zayedkhan1/Event-Reminder-application/internal/storage"
	"github.com/zayedkhan1/Event-Reminder-application/internal/tracker"
)

// DefaultSyncPollInterval is how often the watcher checks the store for
// writes made by another instance of this client.
const DefaultSyncPollInterval = 2 * time.Second

// Options tune the service. Zero values fall back to defaults.
type Options struct {
	Notifier         notify.Notifier
	Buffer           int
	TickInterval     time.Duration
	SyncPollInterval time.Duration
	Location         *time.Location
}

// EventInput carries the user-editable fields of an event.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
}

type Service struct {
	store   storage.Store
	repo    *repository.Repository
	tracker *tracker.Tracker
	engine  *scheduler.Engine
	watcher *watcher

	mu     sync.Mutex
	lastID int64
}

func NewService(store storage.Store, opts Options) *Service {
	tr := tracker.New()
	repo := repository.New(store, tr)

	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = 16
	}
	engine := scheduler.NewEngine(repo, tr, opts.Notifier, buffer)
	if opts.TickInterval > 0 {
		engine.SetInterval(opts.TickInterval)
	}
	if opts.Location != nil {
		engine.SetLocation(opts.Location)
	}

	s := &Service{
		store:   store,
		repo:    repo,
		tracker: tr,
		engine:  engine,
	}

	poll := opts.SyncPollInterval
	if poll <= 0 {
		poll = DefaultSyncPollInterval
	}
	s.watcher = newWatcher(store, repo, poll, s.OnStoreChangedExternally)
	return s
}

// Start loads the persisted collection (evicting anything past retention) and
// brings up the scheduler tick and the store watcher together.
func (s *Service) Start() {
	s.repo.Load(time.Now())
	s.engine.Start()
	s.watcher.Start()
}

// Stop tears the tick and the watcher down as a pair; after it returns no
// goroutine touches the repository anymore.
func (s *Service) Stop() {
	s.engine.Stop()
	s.watcher.Stop()
}

// Due streams events that entered alert state, at most once per event per
// process lifetime.
func (s *Service) Due() <-chan model.Event {
	return s.engine.C()
}

// Dropped reports due signals lost to a saturated consumer.
func (s *Service) Dropped() uint64 {
	return s.engine.Dropped()
}

// ListEvents returns the collection in insertion order; display sorting is the
// caller's concern.
func (s *Service) ListEvents() []model.Event {
	return s.repo.All()
}

// GetEvent looks a single event up by id.
func (s *Service) GetEvent(id int64) (model.Event, bool) {
	return s.repo.Get(id)
}

// CreateEvent validates the input, assigns a unique id and creation stamp and
// inserts the event.
func (s *Service) CreateEvent(in EventInput) (model.Event, error) {
	now := time.Now().UnixMilli()
	ev := model.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		CreatedAt:   now,
	}
	if err := ev.Validate(); err != nil {
		return model.Event{}, err
	}
	ev.ID = s.nextID(now)
	s.repo.Add(ev)
	return ev, nil
}

// EditEvent replaces the user-editable fields of the event matching id. The
// id and creation stamp never change, and a missing id is a silent no-op.
func (s *Service) EditEvent(id int64, in EventInput) error {
	probe := model.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
	}
	if err := probe.Validate(); err != nil {
		return err
	}
	current, ok := s.repo.Get(id)
	if !ok {
		return nil
	}
	current.Title = in.Title
	current.Description = in.Description
	current.Date = in.Date
	current.Time = in.Time
	s.repo.Update(id, current)
	return nil
}

func (s *Service) DeleteEvent(id int64) {
	s.repo.Remove(id)
}

func (s *Service) ToggleComplete(id int64) {
	s.repo.ToggleCompleted(id)
}

// OnStoreChangedExternally applies a payload another instance wrote. A nil
// payload means the store was cleared. An unparsable payload is ignored; the
// in-memory collection is never destroyed by a torn write.
func (s *Service) OnStoreChangedExternally(raw []byte) {
	if raw == nil {
		s.repo.Replace(nil)
		return
	}
	var events []model.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		applog.Error("sync: ignoring unparsable external payload", err)
		return
	}
	s.repo.Replace(events)
}

// nextID hands out creation-timestamp ids, bumping past collisions from
// multiple creates inside one millisecond.
func (s *Service) nextID(now int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := now
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for {
		if _, taken := s.repo.Get(id); !taken {
			break
		}
		id++
	}
	s.lastID = id
	return id
}
