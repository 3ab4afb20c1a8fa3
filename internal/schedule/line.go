// Package schedule parses and normalizes the plain-text schedule format:
//
//	<name> \t| <duration>
//	[x]<name> \t| <duration>
//
// The text is the source of truth; tasks are derived from it on every call.
package schedule

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"cue-cli/internal/model"
)

// fullWidthSpace keeps a fixed-width gap after the separator regardless of tab stops.
const fullWidthSpace = "\u3000"

// Line is one tokenized schedule line.
type Line struct {
	// Done is set when the line carries the completion marker.
	Done bool
	// Name excludes the completion marker and the separator whitespace.
	Name     string
	Duration float64
}

// SplitLine tokenizes line on its first '|'.
//
// The head must be a non-empty name followed by exactly one whitespace rune; the
// tail must be one whitespace rune followed by a decimal literal. Anything after
// the literal is ignored. ok is false when the line is not a task.
func SplitLine(line string) (Line, bool) {
	var l Line
	body := line
	if trimmed := strings.TrimLeftFunc(line, isSpace); strings.HasPrefix(trimmed, model.CompletionMarker) {
		l.Done = true
		body = strings.TrimPrefix(trimmed, model.CompletionMarker)
	}

	i := strings.IndexByte(body, '|')
	if i < 0 {
		return l, false
	}
	head, tail := body[:i], body[i+1:]

	sep, size := utf8.DecodeLastRuneInString(head)
	if size == 0 || !isSpace(sep) || len(head) == size {
		return l, false
	}
	name := head[:len(head)-size]

	lead, size := utf8.DecodeRuneInString(tail)
	if size == 0 || !isSpace(lead) {
		return l, false
	}
	lit, ok := decimalPrefix(tail[size:])
	if !ok {
		return l, false
	}
	d, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return l, false
	}

	l.Name = name
	l.Duration = d
	return l, true
}

// nameOf returns the part of line before the first '|' with the separator
// whitespace dropped, or the whole line when it has no '|'.
func nameOf(line string) string {
	i := strings.IndexByte(line, '|')
	if i < 0 {
		return line
	}
	head := line[:i]
	if r, size := utf8.DecodeLastRuneInString(head); size > 0 && isSpace(r) {
		head = head[:len(head)-size]
	}
	return head
}

// decimalPrefix returns the longest prefix of s matching \d*\.?\d+.
func decimalPrefix(s string) (string, bool) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i+1 {
			return s[:j], true
		}
	}
	if i > 0 {
		return s[:i], true
	}
	return "", false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isSpace matches the ECMAScript \s class: Unicode White_Space plus the byte
// order mark, without NEL (U+0085).
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\ufeff'
}
