package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zayedkhan1/Event-Reminder-application/internal/model"
	"github.com/zayedkhan1/Event-Reminder-application/internal/reminder"
	"github.com/zayedkhan1/Event-Reminder-application/internal/views"
)

// Form field order: title, description, date, time.
const formFieldCount = 4

var formFieldLabels = [formFieldCount]string{"title", "description", "date", "time"}

// openForm prepares the form either blank or pre-filled from an existing event.
func (m *Model) openForm(ev *model.Event) {
	m.Form = FormState{}
	m.titleInput.SetValue("")
	m.descArea.SetValue("")
	m.dateInput.SetValue("")
	m.timeInput.SetValue("")
	if ev != nil {
		id := ev.ID
		m.Form.EditingID = &id
		m.titleInput.SetValue(ev.Title)
		m.descArea.SetValue(ev.Description)
		m.dateInput.SetValue(ev.Date)
		m.timeInput.SetValue(ev.Time)
	}
	m.CurrentView = ViewForm
	m.focusFormField(0)
}

func (m *Model) focusFormField(idx int) {
	m.Form.FocusIndex = idx
	m.titleInput.Blur()
	m.descArea.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
	switch idx {
	case 0:
		m.titleInput.Focus()
	case 1:
		m.descArea.Focus()
	case 2:
		m.dateInput.Focus()
	case 3:
		m.timeInput.Focus()
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.CurrentView = ViewList
		m.Form = FormState{}
		return m, nil

	case "tab":
		m.focusFormField((m.Form.FocusIndex + 1) % formFieldCount)
		return m, nil

	case "shift+tab":
		m.focusFormField((m.Form.FocusIndex + formFieldCount - 1) % formFieldCount)
		return m, nil

	case "enter":
		// Enter inserts a newline inside the description area; everywhere
		// else it submits.
		if m.Form.FocusIndex != 1 {
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	switch m.Form.FocusIndex {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 1:
		m.descArea, cmd = m.descArea.Update(msg)
	case 2:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case 3:
		m.timeInput, cmd = m.timeInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in := reminder.EventInput{
		Title:       m.titleInput.Value(),
		Description: m.descArea.Value(),
		Date:        m.dateInput.Value(),
		Time:        m.timeInput.Value(),
	}

	if m.Form.EditingID != nil {
		if err := m.svc.EditEvent(*m.Form.EditingID, in); err != nil {
			m.Form.Err = err.Error()
			return m, nil
		}
		m.CurrentView = ViewList
		m.Form = FormState{}
		m.syncEvents()
		return m, tea.Batch(statusCmd("event updated", false), clearStatusLaterCmd())
	}

	if _, err := m.svc.CreateEvent(in); err != nil {
		m.Form.Err = err.Error()
		return m, nil
	}
	m.CurrentView = ViewList
	m.Form = FormState{}
	m.syncEvents()
	return m, tea.Batch(statusCmd("event added", false), clearStatusLaterCmd())
}

func (m Model) renderFormView() string {
	heading := "Add event"
	if m.Form.EditingID != nil {
		heading = "Edit event"
	}
	return views.RenderEventForm(views.EventFormData{
		Heading:    heading,
		TitleView:  m.titleInput.View(),
		DescView:   m.descArea.View(),
		DateView:   m.dateInput.View(),
		TimeView:   m.timeInput.View(),
		ErrorText:  m.Form.Err,
		FocusLabel: formFieldLabels[m.Form.FocusIndex],
	})
}
