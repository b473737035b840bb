package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zayedkhan1/Event-Reminder-application/internal/notify"
)

// onReminderDue surfaces the modal, plays the audio cue and re-arms the wait
// on the due channel so later reminders keep arriving.
func (m Model) onReminderDue(msg ReminderDueMsg) (tea.Model, tea.Cmd) {
	ev := msg.Event
	m.Reminder = &ev
	m.syncEvents()

	cmds := []tea.Cmd{waitForReminderCmd(m.svc.Due())}
	if m.audio != nil {
		cmds = append(cmds, playCueCmd(m.audio))
	}
	return m, tea.Batch(cmds...)
}

func playCueCmd(player notify.AudioPlayer) tea.Cmd {
	return func() tea.Msg {
		if err := player.Play(); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("audio cue: %w", err)}
		}
		return nil
	}
}

func (m Model) handleReminderKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc", "enter":
		m.Reminder = nil
	case "c":
		if m.Reminder != nil && !m.Reminder.Completed {
			m.svc.ToggleComplete(m.Reminder.ID)
		}
		m.Reminder = nil
		m.syncEvents()
	}
	return m
}
