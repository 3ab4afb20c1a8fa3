package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cue-cli/internal/model"
	"cue-cli/internal/schedule"
)

const (
	fieldName = iota
	fieldMinutes
	fieldCount
)

type taskView struct {
	name    textinput.Model
	minutes textinput.Model
	focus   int
}

func newTaskView() taskView {
	name := textinput.New()
	name.Placeholder = "task"
	name.Prompt = ""
	name.Width = 32

	minutes := textinput.New()
	minutes.Placeholder = "minutes"
	minutes.Prompt = ""
	minutes.Width = 10

	return taskView{name: name, minutes: minutes}
}

func (v *taskView) entry() schedule.Entry {
	return schedule.Entry{Name: v.name.Value(), Minutes: v.minutes.Value()}
}

// task returns the task to start; ok is false while the form is incomplete.
func (v *taskView) task() (model.Task, bool) {
	t, err := v.entry().Task()
	return t, err == nil
}

func (v *taskView) setFocus(i int) tea.Cmd {
	v.focus = (i%fieldCount + fieldCount) % fieldCount
	if v.focus == fieldName {
		v.minutes.Blur()
		return v.name.Focus()
	}
	v.name.Blur()
	return v.minutes.Focus()
}

func (v *taskView) blur() {
	v.name.Blur()
	v.minutes.Blur()
}

func (v *taskView) reset() {
	v.name.SetValue("")
	v.minutes.SetValue("")
}

func (v *taskView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if v.focus == fieldName {
		v.name, cmd = v.name.Update(msg)
		return cmd
	}

	// Keystrokes that would make the minutes field non-numeric are not admitted.
	prev, pos := v.minutes.Value(), v.minutes.Position()
	v.minutes, cmd = v.minutes.Update(msg)
	if !schedule.IsDurationInput(v.minutes.Value()) {
		v.minutes.SetValue(prev)
		v.minutes.SetCursor(pos)
	}
	return cmd
}

func (v taskView) view() string {
	label := styleMuted().Width(9)
	rows := []string{
		styleTitle().Render("Task"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, label.Render("name"), styleInput(v.focus == fieldName).Render(v.name.View())),
		lipgloss.JoinHorizontal(lipgloss.Center, label.Render("minutes"), styleInput(v.focus == fieldMinutes).Render(v.minutes.View())),
		"",
	}

	button := lipgloss.NewStyle().Padding(0, 2)
	if _, ok := v.task(); ok {
		button = button.Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	} else {
		button = button.Foreground(colorMuted)
	}
	rows = append(rows, button.Render("Start"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
