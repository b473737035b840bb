package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/views"
)

// refreshPeriod drives list refreshes so cross-instance changes surface
// without a keypress.
const refreshPeriod = time.Second

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{refreshCmd()}
	if m.svc != nil {
		cmds = append(cmds, waitForReminderCmd(m.svc.Due()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Reminder != nil {
			return m.handleReminderKey(typed), nil
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.CurrentView == ViewForm {
			return m.handleFormKey(typed)
		}
		return m.handleListKey(typed)

	case ReminderDueMsg:
		return m.onReminderDue(typed)

	case RefreshMsg:
		m.syncEvents()
		return m, refreshCmd()

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			applog.Info("background command failed", "err", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewForm:
		leftPane = m.renderFormView()
	default:
		leftPane = m.renderListView()
	}
	if m.Palette.Active {
		rightPane = views.RenderPalette(views.PaletteData{InputView: m.paletteInput.View()})
	}
	if m.HelpVisible {
		rightPane = joinPanes(rightPane, m.renderHelpView())
	}
	if m.Reminder != nil {
		rightPane = joinPanes(rightPane, views.RenderReminderModal(views.ReminderModalData{
			Title:       m.Reminder.Title,
			Description: m.Reminder.Description,
			Date:        m.Reminder.Date,
			Time:        m.Reminder.Time,
		}))
	}

	header := fmt.Sprintf("event reminder | view: %s | filter: %s", m.CurrentView, m.Filter)
	if m.svc != nil {
		if d := m.svc.Dropped(); d > 0 {
			header += fmt.Sprintf(" | missed signals: %d", d)
		}
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s add | %s edit | %s complete | %s delete | / cmd | %s help | %s quit",
			m.Keys.Add, m.Keys.Edit, m.Keys.Toggle, m.Keys.Delete, m.Keys.Help, m.Keys.Quit),
	})
}

func joinPanes(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n\n" + b
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshPeriod, func(time.Time) tea.Msg { return RefreshMsg{} })
}

func waitForReminderCmd(ch <-chan model.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return SetStatusMsg{Text: text, IsError: isError} }
}

// clearStatusLaterCmd mirrors the short-lived flash messages of the original
// interface.
func clearStatusLaterCmd() tea.Cmd {
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg { return ClearStatusMsg{} })
}
