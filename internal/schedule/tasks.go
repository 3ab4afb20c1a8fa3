package schedule

import (
	"iter"
	"slices"
	"strings"

	"cue-cli/internal/model"
)

// ParseTasks yields the tasks of text in document order. Completed lines and
// lines that are not (yet) tasks are skipped without a diagnostic.
//
// The sequence is lazy and can be ranged over any number of times.
func ParseTasks(text string) iter.Seq[model.Task] {
	return func(yield func(model.Task) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			l, ok := SplitLine(line)
			if !ok || l.Done {
				continue
			}
			if !yield(model.Task{Name: l.Name, Duration: l.Duration}) {
				return
			}
		}
	}
}

func Tasks(text string) []model.Task {
	return slices.Collect(ParseTasks(text))
}

// NextTask returns the first task that is not done, or the empty sentinel.
func NextTask(text string) model.Task {
	for t := range ParseTasks(text) {
		return t
	}
	return model.Task{}
}

// MarkDone prefixes the line holding the next task with the completion marker.
// It reports false when there is no next task.
func MarkDone(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		l, ok := SplitLine(line)
		if !ok || l.Done {
			continue
		}
		lines[i] = model.CompletionMarker + line
		return strings.Join(lines, "\n"), true
	}
	return text, false
}

// Pending counts the tasks that are not done.
func Pending(text string) int {
	n := 0
	for range ParseTasks(text) {
		n++
	}
	return n
}
