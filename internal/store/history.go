package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cue-cli/internal/model"
)

func (s Store) RecordCompletion(ctx context.Context, c model.Completion) error {
	err := s.withDB(ctx, func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO completions(name, seconds, completed_at_unixms) VALUES(?, ?, ?)`,
			c.Name, c.Seconds, c.CompletedAt.UnixMilli(),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// History returns completions, most recent first. limit <= 0 means no limit.
func (s Store) History(ctx context.Context, limit int) ([]model.Completion, error) {
	if limit <= 0 {
		limit = -1
	}
	var out []model.Completion
	err := s.withDB(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT name, seconds, completed_at_unixms FROM completions ORDER BY completed_at_unixms DESC, id DESC LIMIT ?`,
			limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var c model.Completion
			var ms int64
			if err := rows.Scan(&c.Name, &c.Seconds, &ms); err != nil {
				return err
			}
			c.CompletedAt = time.UnixMilli(ms).UTC()
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return out, nil
}
