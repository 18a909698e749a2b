package repository

import (
	"context"
	"fmt"

	"rollcall/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewMatchRepository(db *sqlx.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     db,
		logger: logger,
	}
}

// List orders by the stored date text, newest first. Dates that are not
// ISO formatted sort as plain strings.
func (r *MatchRepository) List(ctx context.Context) ([]domain.Match, error) {
	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, date, price FROM matches ORDER BY date DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("failed to select matches: %w", err)
	}

	matches := make([]domain.Match, len(rows))
	for i, row := range rows {
		matches[i] = row.toDomain()
	}
	return matches, nil
}

func (r *MatchRepository) Create(ctx context.Context, date string, price *float64) (*domain.Match, error) {
	var row matchRow
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO matches (date, price) VALUES (?, ?) RETURNING id, date, price`,
		date, nullableFloat(price),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	r.logger.Debug().Int64("match_id", row.ID).Str("date", row.Date).Msg("match inserted")

	match := row.toDomain()
	return &match, nil
}
