// Package editor holds the schedule editing surface independent of any toolkit.
package editor

import (
	"cue-cli/internal/ipc"
	"cue-cli/internal/model"
	"cue-cli/internal/schedule"
)

// State is either Committed or Editing.
type State interface {
	text() string
}

// Committed is the last value confirmed by the timer process.
type Committed struct {
	Text string
}

// Editing is the local buffer while the editor has focus.
type Editing struct {
	Text string
}

func (s Committed) text() string { return s.Text }
func (s Editing) text() string   { return s.Text }

type Editor struct {
	state   State
	tabSize int
	send    ipc.Sender
}

func New(initial string, send ipc.Sender) *Editor {
	if send == nil {
		send = ipc.Discard
	}
	e := &Editor{
		state:   Committed{Text: initial},
		tabSize: model.MinTabSize,
		send:    send,
	}
	e.tabSize = schedule.NextTabSize(e.tabSize, schedule.LongestNameLength(initial))
	return e
}

func (e *Editor) State() State { return e.state }

// Text is what the editor displays: the local buffer while focused, the
// committed value otherwise.
func (e *Editor) Text() string { return e.state.text() }

func (e *Editor) Focused() bool {
	_, ok := e.state.(Editing)
	return ok
}

func (e *Editor) TabSize() int { return e.tabSize }

// Focus starts editing from a copy of the committed text.
func (e *Editor) Focus() {
	if c, ok := e.state.(Committed); ok {
		e.state = Editing{Text: c.Text}
	}
}

// Edit replaces the local buffer with the normalized form of raw, forwards it
// and returns it. Outside editing it does nothing and returns the current text.
func (e *Editor) Edit(raw string) string {
	if _, ok := e.state.(Editing); !ok {
		return e.Text()
	}
	text := schedule.Normalize(raw)
	e.state = Editing{Text: text}
	e.tabSize = schedule.NextTabSize(e.tabSize, schedule.LongestNameLength(text))
	e.send.Send(ipc.SetSchedule{Text: text})
	return text
}

// Blur commits the local buffer.
func (e *Editor) Blur() {
	ed, ok := e.state.(Editing)
	if !ok {
		return
	}
	e.state = Committed{Text: ed.Text}
	e.send.Send(ipc.SetSchedule{Text: ed.Text})
}

// Receive records a value confirmed by the timer process. While editing, the
// local buffer keeps precedence and the value is dropped.
func (e *Editor) Receive(text string) {
	if _, ok := e.state.(Committed); !ok {
		return
	}
	e.state = Committed{Text: text}
	e.tabSize = schedule.NextTabSize(e.tabSize, schedule.LongestNameLength(text))
}

// Save hands the next task to the timer and asks it to persist the schedule.
func (e *Editor) Save() model.Task {
	next := schedule.NextTask(e.Text())
	e.send.Send(ipc.SetActiveTask{Task: next})
	e.send.Send(ipc.SaveSchedule{})
	return next
}
