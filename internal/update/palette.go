package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zayedkhan1/Event-Reminder-application/internal/commands"
	"github.com/zayedkhan1/Event-Reminder-application/internal/reminder"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.paletteInput.Blur()
		return m, nil

	case "enter":
		input := m.paletteInput.Value()
		m.Palette.Active = false
		m.paletteInput.Blur()
		m.paletteInput.SetValue("")
		return m.runPaletteCommand(input), nil
	}

	var cmd tea.Cmd
	m.paletteInput, cmd = m.paletteInput.Update(msg)
	return m, cmd
}

func (m Model) runPaletteCommand(input string) Model {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	switch cmd.Type {
	case commands.TypeAdd:
		_, err := m.svc.CreateEvent(reminder.EventInput{
			Title: cmd.Add.Title,
			Date:  cmd.Add.Date,
			Time:  cmd.Add.Time,
		})
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("added %q", cmd.Add.Title)}

	case commands.TypeEdit:
		existing, ok := m.svc.GetEvent(cmd.Edit.ID)
		if !ok {
			m.Status = StatusBar{Text: fmt.Sprintf("event %d not found", cmd.Edit.ID), IsError: true}
			return m
		}
		in := reminder.EventInput{
			Title:       existing.Title,
			Description: existing.Description,
			Date:        existing.Date,
			Time:        existing.Time,
		}
		if cmd.Edit.Title != "" {
			in.Title = cmd.Edit.Title
		}
		if cmd.Edit.Date != "" {
			in.Date = cmd.Edit.Date
		}
		if cmd.Edit.Time != "" {
			in.Time = cmd.Edit.Time
		}
		if err := m.svc.EditEvent(cmd.Edit.ID, in); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("updated event %d", cmd.Edit.ID)}

	case commands.TypeDone:
		if _, ok := m.svc.GetEvent(cmd.Target.ID); !ok {
			m.Status = StatusBar{Text: fmt.Sprintf("event %d not found", cmd.Target.ID), IsError: true}
			return m
		}
		m.svc.ToggleComplete(cmd.Target.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("toggled event %d", cmd.Target.ID)}

	case commands.TypeRemove:
		if _, ok := m.svc.GetEvent(cmd.Target.ID); !ok {
			m.Status = StatusBar{Text: fmt.Sprintf("event %d not found", cmd.Target.ID), IsError: true}
			return m
		}
		m.svc.DeleteEvent(cmd.Target.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("removed event %d", cmd.Target.ID)}

	case commands.TypeShow:
		switch strings.ToLower(cmd.Show.Subject) {
		case "upcoming":
			m.Filter = FilterUpcoming
		case "done":
			m.Filter = FilterDone
		default:
			m.Filter = FilterAll
		}
		m.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("showing %s", m.Filter)}
	}

	m.syncEvents()
	return m
}
