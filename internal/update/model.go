package update

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/notify"
	"github.com/zayedkhan1/Event-Reminder-application/internal/reminder"
)

type View string

const (
	ViewList View = "Events"
	ViewForm View = "Form"
)

// ListFilter selects which slice of the collection the list shows.
type ListFilter string

const (
	FilterAll      ListFilter = "all"
	FilterUpcoming ListFilter = "upcoming"
	FilterDone     ListFilter = "done"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Add    string
	Edit   string
	Toggle string
	Delete string
	Help   string
	Quit   string
}

// FormState is the add/edit surface. A nil EditingID means the form creates.
type FormState struct {
	EditingID  *int64
	FocusIndex int
	Err        string
}

type CommandPaletteState struct {
	Active bool
}

type Model struct {
	CurrentView   View
	Filter        ListFilter
	Events        []model.Event // display order: scheduledAt ascending
	Cursor        int
	Form          FormState
	Reminder      *model.Event
	PendingDelete *int64
	Palette       CommandPaletteState
	HelpVisible   bool
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	svc   *reminder.Service
	audio notify.AudioPlayer

	titleInput   textinput.Model
	descArea     textarea.Model
	dateInput    textinput.Model
	timeInput    textinput.Model
	paletteInput textinput.Model
	helpModel    help.Model
}

type ReminderDueMsg struct {
	Event model.Event
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// RefreshMsg re-reads the collection, which picks up cross-instance changes.
type RefreshMsg struct{}

func NewModel(svc *reminder.Service, audio notify.AudioPlayer) Model {
	if audio == nil {
		audio = notify.NoopAudioPlayer{}
	}
	m := Model{
		CurrentView: ViewList,
		Filter:      FilterAll,
		Keys: GlobalKeyMap{
			Add:    "a",
			Edit:   "e",
			Toggle: "c",
			Delete: "d",
			Help:   "?",
			Quit:   "q",
		},
		svc:   svc,
		audio: audio,
	}
	m.initInputs()
	m.syncEvents()
	return m
}

func (m *Model) initInputs() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = ""
	m.titleInput.Placeholder = "Event title"
	m.titleInput.CharLimit = 120

	m.descArea = textarea.New()
	m.descArea.Placeholder = "Event description (optional)"
	m.descArea.SetHeight(3)
	m.descArea.SetWidth(40)

	m.dateInput = textinput.New()
	m.dateInput.Prompt = ""
	m.dateInput.Placeholder = model.DateLayout

	m.timeInput = textinput.New()
	m.timeInput.Prompt = ""
	m.timeInput.Placeholder = "HH:MM"

	m.paletteInput = textinput.New()
	m.paletteInput.Prompt = "> "

	m.helpModel = help.New()
}

// syncEvents pulls the collection and re-sorts it for display. The cursor is
// clamped so deletions from another instance never leave it dangling.
func (m *Model) syncEvents() {
	if m.svc == nil {
		return
	}
	m.Events = sortForDisplay(m.svc.ListEvents())
	if m.Cursor >= len(m.Events) {
		m.Cursor = len(m.Events) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func sortForDisplay(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	keyOf := func(ev model.Event) int64 {
		at, err := ev.ScheduledAt(time.Local)
		if err != nil {
			// Unparsable schedules sink to the bottom.
			return int64(^uint64(0) >> 1)
		}
		return at.UnixMilli()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keyOf(out[i]) < keyOf(out[j])
	})
	return out
}
