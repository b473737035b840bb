package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/views"
)

// listHelpKeys satisfies help.KeyMap for the built-in short help line.
type listHelpKeys struct{}

func (listHelpKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "done")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k listHelpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An armed delete only understands confirm or cancel.
	if m.PendingDelete != nil {
		switch msg.String() {
		case "y", "Y":
			id := *m.PendingDelete
			m.PendingDelete = nil
			m.svc.DeleteEvent(id)
			m.syncEvents()
			return m, tea.Batch(statusCmd("event deleted", false), clearStatusLaterCmd())
		default:
			m.PendingDelete = nil
			return m, nil
		}
	}

	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.Cursor < len(m.visibleEvents())-1 {
			m.Cursor++
		}
		return m, nil

	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case m.Keys.Add:
		m.openForm(nil)
		return m, nil

	case m.Keys.Edit:
		if ev, ok := m.selectedEvent(); ok {
			m.openForm(&ev)
		}
		return m, nil

	case m.Keys.Toggle:
		if ev, ok := m.selectedEvent(); ok {
			m.svc.ToggleComplete(ev.ID)
			m.syncEvents()
		}
		return m, nil

	case m.Keys.Delete:
		if ev, ok := m.selectedEvent(); ok {
			id := ev.ID
			m.PendingDelete = &id
		}
		return m, nil

	case "f":
		m.Filter = nextFilter(m.Filter)
		m.Cursor = 0
		return m, nil

	case "/":
		m.Palette.Active = true
		m.paletteInput.SetValue("")
		m.paletteInput.Focus()
		return m, nil

	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}

	return m, nil
}

func nextFilter(f ListFilter) ListFilter {
	switch f {
	case FilterAll:
		return FilterUpcoming
	case FilterUpcoming:
		return FilterDone
	default:
		return FilterAll
	}
}

// visibleEvents applies the active filter to the display-ordered collection.
func (m *Model) visibleEvents() []model.Event {
	if m.Filter == FilterAll {
		return m.Events
	}
	now := time.Now()
	out := make([]model.Event, 0, len(m.Events))
	for _, ev := range m.Events {
		switch m.Filter {
		case FilterDone:
			if ev.Completed {
				out = append(out, ev)
			}
		case FilterUpcoming:
			if ev.Completed {
				continue
			}
			at, err := ev.ScheduledAt(time.Local)
			if err != nil || !at.Before(now) {
				out = append(out, ev)
			}
		}
	}
	return out
}

func (m *Model) selectedEvent() (model.Event, bool) {
	visible := m.visibleEvents()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Event{}, false
	}
	return visible[m.Cursor], true
}

func (m Model) renderListView() string {
	visible := m.visibleEvents()
	now := time.Now()
	rows := make([]views.EventRowData, 0, len(visible))
	for i, ev := range visible {
		past := false
		if at, err := ev.ScheduledAt(time.Local); err == nil {
			past = at.Before(now)
		}
		rows = append(rows, views.EventRowData{
			ID:          ev.ID,
			Title:       ev.Title,
			Description: ev.Description,
			Date:        ev.Date,
			Time:        ev.Time,
			Completed:   ev.Completed,
			Past:        past,
			Selected:    i == m.Cursor,
			DeleteArmed: m.PendingDelete != nil && *m.PendingDelete == ev.ID,
		})
	}
	return views.RenderEventList(views.EventListData{
		Rows:  rows,
		Total: len(m.Events),
		Shown: string(m.Filter),
	})
}

func (m Model) renderHelpView() string {
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: []string{
			fmt.Sprintf("%s  add event", m.Keys.Add),
			fmt.Sprintf("%s  edit selected", m.Keys.Edit),
			fmt.Sprintf("%s  toggle complete", m.Keys.Toggle),
			fmt.Sprintf("%s  delete selected", m.Keys.Delete),
			"f  cycle filter",
			"/  command palette",
			"j/k  move cursor",
			fmt.Sprintf("%s  quit", m.Keys.Quit),
		},
		HelpView: m.helpModel.View(listHelpKeys{}),
	})
}
