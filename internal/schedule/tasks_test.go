package schedule

import (
	"reflect"
	"strings"
	"testing"

	"cue-cli/internal/model"
)

func TestTasks_SkipsCompletedAndMalformed(t *testing.T) {
	text := "Write report | 25\n[x]Email boss | 5\nBrainstorm | 10"
	got := Tasks(text)
	want := []model.Task{
		{Name: "Write report", Duration: 25},
		{Name: "Brainstorm", Duration: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tasks = %#v, want %#v", got, want)
	}
	if next := NextTask(text); next != want[0] {
		t.Fatalf("NextTask = %#v, want %#v", next, want[0])
	}
}

func TestTasks_SameResultBeforeAndAfterNormalize(t *testing.T) {
	text := "Write report | 25\n[x]Email boss | 5\nBrainstorm | 10\nno duration |\n"
	raw := Tasks(text)
	norm := Tasks(Normalize(text))
	if !reflect.DeepEqual(raw, norm) {
		t.Fatalf("normalize changed tasks: raw=%#v norm=%#v", raw, norm)
	}
}

func TestSplitLine(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want Line
	}{
		{in: "a | 1", ok: true, want: Line{Name: "a", Duration: 1}},
		{in: "a\t|　1.5", ok: true, want: Line{Name: "a", Duration: 1.5}},
		{in: "a | .5", ok: true, want: Line{Name: "a", Duration: 0.5}},
		{in: "a | 12.", ok: true, want: Line{Name: "a", Duration: 12}},
		{in: "a | 1.2.3", ok: true, want: Line{Name: "a", Duration: 1.2}},
		{in: "a | 7 minutes", ok: true, want: Line{Name: "a", Duration: 7}},
		{in: "two  words | 3", ok: true, want: Line{Name: "two  words", Duration: 3}},
		{in: "[x]done | 4", ok: true, want: Line{Done: true, Name: "done", Duration: 4}},
		{in: "  [x]done | 4", ok: true, want: Line{Done: true, Name: "done", Duration: 4}},
		{in: "a | b | 1", ok: false},
		{in: "a|1", ok: false},
		{in: "a |1", ok: false},
		{in: "a| 1", ok: false},
		{in: " | 1", ok: false},
		{in: "a | ", ok: false},
		{in: "a | x", ok: false},
		{in: "just text", ok: false},
		{in: "a\u00a0| 1", ok: true, want: Line{Name: "a", Duration: 1}},
		{in: "a\ufeff| 1", ok: true, want: Line{Name: "a", Duration: 1}},
		{in: "a\u0085| 1", ok: false},
		{in: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := SplitLine(tc.in)
		if ok != tc.ok {
			t.Fatalf("SplitLine(%q) ok=%v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("SplitLine(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestTasks_NeverIncludesCompletedLines(t *testing.T) {
	text := "[x]a | 1\n   [x]b | 2\n\t[x]c | 3\nd | 4"
	for task := range ParseTasks(text) {
		if task.Name != "d" {
			t.Fatalf("unexpected task %#v", task)
		}
	}
	if n := Pending(text); n != 1 {
		t.Fatalf("Pending = %d, want 1", n)
	}
}

func TestParseTasks_Restartable(t *testing.T) {
	seq := ParseTasks("a | 1\nb | 2")
	var first, second []string
	for task := range seq {
		first = append(first, task.Name)
	}
	for task := range seq {
		second = append(second, task.Name)
	}
	if strings.Join(first, ",") != "a,b" || strings.Join(second, ",") != "a,b" {
		t.Fatalf("first=%v second=%v", first, second)
	}
}

func TestNextTask_EmptySentinel(t *testing.T) {
	for _, text := range []string{"", "header\n\n", "[x]a | 1"} {
		got := NextTask(text)
		if got != (model.Task{}) || !got.IsZero() {
			t.Fatalf("NextTask(%q) = %#v, want empty sentinel", text, got)
		}
	}
}

func TestMarkDone_AdvancesNextTask(t *testing.T) {
	text := "header\na | 1\nb | 2"
	out, ok := MarkDone(text)
	if !ok {
		t.Fatalf("expected a line to be marked")
	}
	if out != "header\n[x]a | 1\nb | 2" {
		t.Fatalf("MarkDone = %q", out)
	}
	if next := NextTask(out); next.Name != "b" {
		t.Fatalf("NextTask after MarkDone = %#v", next)
	}

	out, _ = MarkDone(out)
	if _, ok := MarkDone(out); ok {
		t.Fatalf("expected nothing left to mark in %q", out)
	}
}
