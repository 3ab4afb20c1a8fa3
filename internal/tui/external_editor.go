package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type externalEditorDoneMsg struct {
	path string
	err  error
}

func externalEditorName() string {
	for _, k := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return "vi"
}

func externalEditorArgv(path string) []string {
	argv := splitShellWords(externalEditorName())
	if len(argv) == 0 {
		argv = []string{"vi"}
	}
	return append(argv, path)
}

// openExternalEditor suspends the program and edits the schedule in $VISUAL or
// $EDITOR through a temp file.
func (m *appModel) openExternalEditor() (tea.Cmd, error) {
	f, err := os.CreateTemp("", "cue-schedule-*.txt")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if _, err := f.WriteString(m.ed.Text()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	argv := externalEditorArgv(path)
	cmd := exec.Command(argv[0], argv[1:]...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return externalEditorDoneMsg{path: path, err: err}
	}), nil
}

func (m *appModel) applyExternalEditorResult(msg externalEditorDoneMsg) {
	defer func() { _ = os.Remove(msg.path) }()

	if msg.err != nil {
		m.status = "Editor failed: " + msg.err.Error()
		return
	}
	b, err := os.ReadFile(msg.path)
	if err != nil {
		m.status = "Editor read failed: " + err.Error()
		return
	}

	before := m.ed.Text()
	after := string(b)
	// Most editors append a final newline.
	if !strings.HasSuffix(before, "\n") {
		after = strings.TrimSuffix(after, "\n")
	}
	if after == before {
		m.status = fmt.Sprintf("No changes from %s", externalEditorName())
		return
	}
	if m.view != viewSchedule {
		m.setView(viewSchedule)
	}
	m.schedule.replace(after)
	m.status = fmt.Sprintf("Updated from %s (ctrl+s to save)", externalEditorName())
}
