package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/survivor-league/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the built-in competitions on an empty database so a
// fresh deployment has something to schedule against. It is a no-op once any
// competition row exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM competitions`); err != nil {
		return fmt.Errorf("count competitions for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range memory.SeedCompetitions() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO competitions (id, name, sport, season, code, completion_buffer_minutes)
VALUES (:id, :name, :sport, :season, :code, :completion_buffer_minutes)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":                        c.ID,
			"name":                      c.Name,
			"sport":                     c.Sport,
			"season":                    c.Season,
			"code":                      c.Code,
			"completion_buffer_minutes": c.CompletionBufferMinutes,
		})
		if err != nil {
			return fmt.Errorf("bind seed competition %s query: %w", c.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("insert seed competition %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
