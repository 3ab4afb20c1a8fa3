package tui

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"cue-cli/internal/ipc"
)

func TestApplyExternalEditorResult_NormalizesAndCleansUp(t *testing.T) {
	rec := &recorder{}
	m := newTestApp(rec, "a\t|　1", "schedule")

	path := filepath.Join(t.TempDir(), "edited.txt")
	if err := os.WriteFile(path, []byte("a\t|　1\nb | 2\n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	m = send(t, m, externalEditorDoneMsg{path: path})

	want := "a\t|　1\nb\t|　2"
	if got := m.ed.Text(); got != want {
		t.Fatalf("editor text = %q, want %q", got, want)
	}
	if got := fromDisplay(m.schedule.input.Value()); got != want {
		t.Fatalf("textarea = %q, want %q", got, want)
	}
	if len(rec.msgs) == 0 || !reflect.DeepEqual(rec.msgs[len(rec.msgs)-1], ipc.SetSchedule{Text: want}) {
		t.Fatalf("expected SetSchedule with edited text, got %#v", rec.msgs)
	}
	if m.status == "" {
		t.Fatalf("expected a status notice")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be removed, stat err=%v", err)
	}
}

func TestApplyExternalEditorResult_NoChanges(t *testing.T) {
	rec := &recorder{}
	m := newTestApp(rec, "a\t|　1", "schedule")

	path := filepath.Join(t.TempDir(), "edited.txt")
	if err := os.WriteFile(path, []byte("a\t|　1\n"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	m = send(t, m, externalEditorDoneMsg{path: path})

	if len(rec.msgs) != 0 {
		t.Fatalf("expected no messages, got %#v", rec.msgs)
	}
	if m.status == "" {
		t.Fatalf("expected a status notice")
	}
}

func TestExternalEditorArgv(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "code --wait")
	got := externalEditorArgv("/tmp/x.txt")
	want := []string{"code", "--wait", "/tmp/x.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("argv = %v, want %v", got, want)
	}
}
