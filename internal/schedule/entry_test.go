package schedule

import (
	"testing"

	"cue-cli/internal/model"
)

func TestIsDurationInput(t *testing.T) {
	for _, s := range []string{"", "1", "12.", "12.5", ".5", "."} {
		if !IsDurationInput(s) {
			t.Fatalf("expected %q to be admitted", s)
		}
	}
	for _, s := range []string{"a", "1a", "1.2.3", "-1", " 1"} {
		if IsDurationInput(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestEntryTask(t *testing.T) {
	got, err := Entry{Name: "Focus", Minutes: "12.5"}.Task()
	if err != nil {
		t.Fatalf("Task: %v", err)
	}
	if got != (model.Task{Name: "Focus", Duration: 750}) {
		t.Fatalf("Task = %#v", got)
	}

	for _, e := range []Entry{
		{Name: "", Minutes: "5"},
		{Name: "Focus", Minutes: ""},
		{Name: "Focus", Minutes: "."},
	} {
		if _, err := e.Task(); err == nil {
			t.Fatalf("expected %#v to be rejected", e)
		}
	}
}
