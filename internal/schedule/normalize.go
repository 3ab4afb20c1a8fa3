package schedule

import "strings"

// Normalize rewrites every task separator to the canonical "\t|" form and keeps
// the duration column aligned:
//
//   - a whitespace rune right before the first separator becomes a tab, unless
//     the line already has a "\t|";
//   - tabs not followed by '|' collapse to a single space;
//   - "| " becomes "|" followed by a full-width space.
//
// Lines without '|' are left untouched. Normalize is idempotent and keeps the
// rune count of every line, so a caret position (row, column) stays valid.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func normalizeLine(line string) string {
	if !strings.Contains(line, "|") {
		return line
	}
	if !strings.Contains(line, "\t|") {
		line = retabSeparator(line)
	}
	line = collapseTabs(line)
	return strings.ReplaceAll(line, "| ", "|"+fullWidthSpace)
}

// retabSeparator replaces the first non-tab whitespace rune that precedes a '|'.
func retabSeparator(line string) string {
	prevAt := -1
	var prev rune
	for i, r := range line {
		if r == '|' && prevAt >= 0 && prev != '\t' && isSpace(prev) {
			return line[:prevAt] + "\t" + line[i:]
		}
		prevAt, prev = i, r
	}
	return line
}

func collapseTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	b := []byte(line)
	for i := range b {
		if b[i] == '\t' && (i+1 >= len(b) || b[i+1] != '|') {
			b[i] = ' '
		}
	}
	return string(b)
}
