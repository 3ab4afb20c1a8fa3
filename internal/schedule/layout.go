package schedule

import (
	"strings"
	"unicode/utf8"

	"cue-cli/internal/model"
)

// tabSizeSlack is how far the longest name may shrink below half the tab size
// before the tab size is recomputed.
const tabSizeSlack = 10

// LongestNameLength returns the rune length of the longest task name in text.
func LongestNameLength(text string) int {
	longest := 0
	for line := range strings.SplitSeq(text, "\n") {
		if n := utf8.RuneCountInString(nameOf(line)); n > longest {
			longest = n
		}
	}
	return longest
}

// NextTabSize returns the editor tab-stop width for a schedule whose longest
// name is longest runes. current is kept while it still fits, to avoid
// re-aligning the column on every keystroke.
func NextTabSize(current, longest int) int {
	half := float64(current) / 2
	if float64(longest) > half || float64(longest) < half-tabSizeSlack {
		return max(longest*2+10, model.MinTabSize)
	}
	return current
}

// ColumnWidth converts a tab size into the terminal cell column where durations start.
func ColumnWidth(tabSize int) int {
	return tabSize / 2
}
