package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	sqliteFileName = "cue.sqlite"
	dirName        = ".cue"
)

// Store persists the schedule, the staged active task and completion history
// under Dir. Each call opens its own connection so the TUI and CLI commands
// can run side by side.
type Store struct {
	Dir string
}

// DefaultDir returns ~/.cue.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(home) == "" {
		return "", errors.New("cannot resolve home directory")
	}
	return filepath.Join(home, dirName), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: missing dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), sqliteFileName)
}
