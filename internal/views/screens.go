package views

import (
	"fmt"
	"strings"
)

type EventRowData struct {
	ID          int64
	Title       string
	Description string
	Date        string
	Time        string
	Completed   bool
	Past        bool
	Selected    bool
	DeleteArmed bool
}

type EventListData struct {
	Rows  []EventRowData
	Total int
	Shown string
}

func RenderEventList(data EventListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("events (%s, %d total):\n", data.Shown, data.Total))
	b.WriteString("actions: [a]dd [e]dit [c]omplete [d]elete [j/k]move [/]cmd\n")
	if len(data.Rows) == 0 {
		b.WriteString("\nno events yet. press a to add one.")
		return strings.TrimSpace(b.String())
	}
	for _, row := range data.Rows {
		line := fmt.Sprintf("%s %s  %s", row.Date, row.Time, row.Title)
		if row.Description != "" {
			line += "  — " + row.Description
		}
		switch {
		case row.Completed:
			line = "[x] " + doneStyle.Render(line)
		case row.Past:
			line = "[ ] " + overdueStyle.Render(line)
		default:
			line = "[ ] " + line
		}
		if row.DeleteArmed {
			line += errorStyle.Render("  delete? [y/n]")
		}
		if row.Selected {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString("\n" + line)
	}
	return strings.TrimSpace(b.String())
}

type EventFormData struct {
	Heading    string
	TitleView  string
	DescView   string
	DateView   string
	TimeView   string
	ErrorText  string
	FocusLabel string
}

func RenderEventForm(data EventFormData) string {
	var b strings.Builder
	b.WriteString(data.Heading + "\n")
	b.WriteString("actions: [tab]next field [enter]save [esc]cancel\n\n")
	b.WriteString("title*       " + data.TitleView + "\n")
	b.WriteString("description  " + data.DescView + "\n")
	b.WriteString("date*        " + data.DateView + "\n")
	b.WriteString("time*        " + data.TimeView + "\n")
	if data.ErrorText != "" {
		b.WriteString("\n" + errorStyle.Render(data.ErrorText))
	}
	return strings.TrimSpace(b.String())
}

type ReminderModalData struct {
	Title       string
	Description string
	Date        string
	Time        string
}

func RenderReminderModal(data ReminderModalData) string {
	var b strings.Builder
	b.WriteString("⏰ Event Reminder\n\n")
	b.WriteString(data.Title + "\n")
	if data.Description != "" {
		b.WriteString(data.Description + "\n")
	}
	b.WriteString(fmt.Sprintf("\nscheduled at: %s %s\n", data.Date, data.Time))
	b.WriteString("\n[esc]dismiss [c]mark done")
	return modalStyle.Render(strings.TrimSpace(b.String()))
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown("# keys"))
	for _, binding := range data.Bindings {
		b.WriteString("\n" + binding)
	}
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	return strings.TrimSpace(b.String())
}

type PaletteData struct {
	InputView string
}

func RenderPalette(data PaletteData) string {
	return "command palette — add <title> @ <date> <time> | edit <id> ... | done <id> | rm <id> | show <subject>\n" + data.InputView
}
