package repository

import (
	"context"
	"fmt"

	"rollcall/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewPlayerRepository(db *sqlx.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name, phone, balance FROM players ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to select players: %w", err)
	}

	players := make([]domain.Player, len(rows))
	for i, row := range rows {
		players[i] = row.toDomain()
	}
	return players, nil
}

func (r *PlayerRepository) Create(ctx context.Context, name string, phone *string) (*domain.Player, error) {
	var row playerRow
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO players (name, phone) VALUES (?, ?) RETURNING id, name, phone, balance`,
		name, nullableString(phone),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}

	r.logger.Debug().Int64("player_id", row.ID).Str("name", row.Name).Msg("player inserted")

	player := row.toDomain()
	return &player, nil
}
