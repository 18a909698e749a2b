package service

import (
	"context"
	"strings"

	"rollcall/internal/constants"
	"rollcall/internal/domain"
	"rollcall/internal/repository"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	repo   *repository.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, logger: logger}
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players")
		return nil, &domain.StorageError{Op: "list players", Err: err}
	}
	return players, nil
}

// Create stores a new player. The name is trimmed and must be non-empty; a
// blank phone is stored as NULL.
func (s *PlayerService) Create(ctx context.Context, name string, phone *string) (*domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "Name is required")
	}

	if phone != nil {
		trimmed := strings.TrimSpace(*phone)
		if trimmed == "" {
			phone = nil
		} else {
			phone = &trimmed
		}
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.repo.Create(ctx, name, phone)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create player")
		return nil, &domain.StorageError{Op: "create player", Err: err}
	}

	s.logger.Info().Int64("player_id", player.ID).Str("name", player.Name).Msg("player created")
	return player, nil
}
