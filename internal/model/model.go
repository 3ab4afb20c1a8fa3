package model

import "time"

// Task is one schedulable unit derived from a schedule line.
//
// Duration is interpreted by the sender's convention: minutes for schedule
// lines, seconds for tasks started from the entry form.
type Task struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// IsZero reports whether t is the empty "no next task" sentinel.
func (t Task) IsZero() bool {
	return t.Name == "" && t.Duration == 0
}

// ActiveTask is the task the timer is currently counting down.
type ActiveTask struct {
	Name    string  `json:"name"`
	Seconds float64 `json:"seconds"`
	// FromSchedule is set when the task came from the schedule text; completing it
	// marks its line done and advances to the next line.
	FromSchedule bool `json:"fromSchedule,omitempty"`
}

func (t ActiveTask) IsZero() bool {
	return t.Name == "" && t.Seconds == 0
}

func (t ActiveTask) Duration() time.Duration {
	return time.Duration(t.Seconds * float64(time.Second))
}

// Completion is a finished task recorded in history.
type Completion struct {
	Name        string    `json:"name"`
	Seconds     float64   `json:"seconds"`
	CompletedAt time.Time `json:"completedAt"`
}

const (
	// CompletionMarker prefixes schedule lines whose task is done.
	CompletionMarker = "[x]"

	// MinTabSize is the smallest tab-stop width the editor uses.
	MinTabSize = 40

	TicksPerSecond   = 10
	CooldownDuration = 10 * time.Second
)
