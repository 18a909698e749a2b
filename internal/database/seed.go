package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// SeedDefaultPlayers inserts names when the players table is empty. A failed
// count check is logged and skipped; insert failures are returned.
func SeedDefaultPlayers(ctx context.Context, db *sqlx.DB, names []string, logger zerolog.Logger) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		logger.Warn().Err(err).Msg("failed to count players, skipping default roster seed")
		return nil
	}
	if count > 0 {
		logger.Debug().Int("players", count).Msg("players present, skipping default roster seed")
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, name := range names {
		if _, err := tx.ExecContext(ctx, `INSERT INTO players (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("failed to seed player %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit default roster seed: %w", err)
	}

	logger.Info().Strs("names", names).Msg("seeded default roster")
	return nil
}
