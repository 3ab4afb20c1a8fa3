package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"cue-cli/internal/editor"
	"cue-cli/internal/schedule"
)

const (
	editorMinWidth  = 30
	editorMinHeight = 8
	editorRoundW    = 10
	editorRoundH    = 5
	lineNumberWidth = 6

	// tabGlyph stands in for tabs inside the textarea, whose input sanitizer
	// expands real tabs to spaces. It is a single rune so caret columns match.
	tabGlyph = "⇥"
)

func toDisplay(text string) string   { return strings.ReplaceAll(text, "\t", tabGlyph) }
func fromDisplay(text string) string { return strings.ReplaceAll(text, tabGlyph, "\t") }

type scheduleView struct {
	ed    *editor.Editor
	input textarea.Model

	// The editor box only grows while a session lasts so it does not jump
	// around on small edits.
	boxW int
	boxH int
}

func newScheduleView(ed *editor.Editor) scheduleView {
	ta := textarea.New()
	ta.Placeholder = "task | duration"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.SetValue(toDisplay(ed.Text()))
	return scheduleView{ed: ed, input: ta, boxW: editorMinWidth, boxH: editorMinHeight}
}

func (v *scheduleView) focus() tea.Cmd {
	v.ed.Focus()
	if fromDisplay(v.input.Value()) != v.ed.Text() {
		v.input.SetValue(toDisplay(v.ed.Text()))
	}
	return v.input.Focus()
}

func (v *scheduleView) blur() {
	v.input.Blur()
	v.ed.Blur()
}

// sync shows text confirmed by the timer while the editor is not focused.
func (v *scheduleView) sync(text string) {
	v.ed.Receive(text)
	if !v.ed.Focused() && fromDisplay(v.input.Value()) != v.ed.Text() {
		v.input.SetValue(toDisplay(v.ed.Text()))
	}
}

func (v *scheduleView) update(msg tea.Msg) tea.Cmd {
	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() == before {
		return cmd
	}
	after := fromDisplay(v.input.Value())

	row, col := caret(v.input)
	normalized := v.ed.Edit(after)
	if display := toDisplay(normalized); display != v.input.Value() {
		v.input.SetValue(display)
		moveCaret(&v.input, row, col)
	}
	return cmd
}

// replace loads text that was edited outside the textarea.
func (v *scheduleView) replace(text string) string {
	normalized := v.ed.Edit(text)
	v.input.SetValue(toDisplay(normalized))
	return normalized
}

func (v *scheduleView) resize(termW, termH int) {
	text := v.ed.Text()
	widest := 0
	for line := range strings.SplitSeq(text, "\n") {
		widest = max(widest, xansi.StringWidth(line))
	}
	lines := strings.Count(text, "\n") + 1

	maxW := max(editorMinWidth, termW/2-2)
	maxH := max(editorMinHeight, termH-6)
	v.boxW = min(max(v.boxW, fitDim(widest+lineNumberWidth+2, editorRoundW, editorMinWidth)), maxW)
	v.boxH = min(max(v.boxH, fitDim(lines+1, editorRoundH, editorMinHeight)), maxH)
	v.input.SetWidth(v.boxW)
	v.input.SetHeight(v.boxH)
}

func (v scheduleView) view(termW int) string {
	previewW := max(20, termW-v.boxW-4)
	preview := renderAligned(v.ed.Text(), schedule.ColumnWidth(v.ed.TabSize()))
	preview = lipgloss.NewStyle().Width(previewW).MaxHeight(v.boxH).Render(preview)

	body := lipgloss.JoinHorizontal(lipgloss.Top, v.input.View(), "  ", preview)

	pending := schedule.Pending(v.ed.Text())
	next := schedule.NextTask(v.ed.Text())
	status := styleMuted().Render("no pending tasks")
	if !next.IsZero() {
		status = styleMuted().Render("next: ") + styleNextTask().Render(next.Name) +
			styleMuted().Render(" · "+formatMinutes(next.Duration)+" · "+pluralTasks(pending))
	}
	return lipgloss.JoinVertical(lipgloss.Left, styleTitle().Render("Schedule"), "", body, "", status)
}

// caret returns the logical row and rune column of the textarea cursor.
func caret(ta textarea.Model) (int, int) {
	li := ta.LineInfo()
	return ta.Line(), li.StartColumn + li.ColumnOffset
}

// moveCaret puts the cursor back at (row, col) after SetValue moved it to the end.
func moveCaret(ta *textarea.Model, row, col int) {
	for guard := ta.LineCount() * 4; ta.Line() > row && guard > 0; guard-- {
		ta.CursorUp()
	}
	for guard := ta.LineCount() * 4; ta.Line() < row && guard > 0; guard-- {
		ta.CursorDown()
	}
	ta.SetCursor(col)
}

// fitDim rounds size up to the next multiple of round, never below min.
func fitDim(size, round, minSize int) int {
	if round <= 0 {
		return max(size, minSize)
	}
	return max((size+round-1)/round*round, minSize)
}

// renderAligned lays the schedule out with every duration starting at column
// col. Completed lines are struck through and the next task is highlighted.
func renderAligned(text string, col int) string {
	lines := strings.Split(text, "\n")
	nextLine := -1
	for i, line := range lines {
		if l, ok := schedule.SplitLine(line); ok && !l.Done {
			nextLine = i
			break
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		l, isTask := schedule.SplitLine(line)
		aligned := alignLine(line, col)
		switch {
		case isTask && l.Done:
			out[i] = styleDoneTask().Render(aligned)
		case i == nextLine:
			out[i] = styleNextTask().Render(aligned)
		case isTask:
			out[i] = aligned
		default:
			out[i] = styleMuted().Render(aligned)
		}
	}
	return strings.Join(out, "\n")
}

func alignLine(line string, col int) string {
	i := strings.Index(line, "\t|")
	if i < 0 {
		return line
	}
	name := line[:i]
	pad := max(col-xansi.StringWidth(name), 1)
	return name + strings.Repeat(" ", pad) + line[i+1:]
}
