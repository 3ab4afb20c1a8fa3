package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cue-cli/internal/model"
)

const (
	metaSchedule = "schedule"
	metaActive   = "active_task"
)

// LoadSchedule returns the saved schedule text ("" when none was saved).
func (s Store) LoadSchedule(ctx context.Context) (string, error) {
	var text string
	err := s.withDB(ctx, func(db *sql.DB) error {
		v, _, err := getMeta(ctx, db, metaSchedule)
		text = v
		return err
	})
	if err != nil {
		return "", fmt.Errorf("load schedule: %w", err)
	}
	return text, nil
}

func (s Store) SaveSchedule(ctx context.Context, text string) error {
	err := s.withDB(ctx, func(db *sql.DB) error {
		return setMeta(ctx, db, metaSchedule, text)
	})
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// LoadActive returns the staged active task; the zero value when none.
func (s Store) LoadActive(ctx context.Context) (model.ActiveTask, error) {
	var t model.ActiveTask
	err := s.withDB(ctx, func(db *sql.DB) error {
		v, ok, err := getMeta(ctx, db, metaActive)
		if err != nil || !ok {
			return err
		}
		return json.Unmarshal([]byte(v), &t)
	})
	if err != nil {
		return model.ActiveTask{}, fmt.Errorf("load active task: %w", err)
	}
	return t, nil
}

// SaveState stores the schedule and the active task in one transaction.
func (s Store) SaveState(ctx context.Context, text string, active model.ActiveTask) error {
	b, err := json.Marshal(active)
	if err != nil {
		return err
	}
	err = s.withDB(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		if err := setMeta(ctx, tx, metaSchedule, text); err != nil {
			return err
		}
		if err := setMeta(ctx, tx, metaActive, string(b)); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
