package service

import (
	"context"
	"strings"

	"rollcall/internal/constants"
	"rollcall/internal/domain"
	"rollcall/internal/repository"

	"github.com/rs/zerolog"
)

type MatchService struct {
	repo   *repository.MatchRepository
	logger zerolog.Logger
}

func NewMatchService(repo *repository.MatchRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{repo: repo, logger: logger}
}

// List returns matches newest first. Dates are compared as text.
func (s *MatchService) List(ctx context.Context) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	matches, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list matches")
		return nil, &domain.StorageError{Op: "list matches", Err: err}
	}
	return matches, nil
}

func (s *MatchService) Create(ctx context.Context, date string, price *float64) (*domain.Match, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, domain.NewValidationError("date", "Date is required")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	match, err := s.repo.Create(ctx, date, price)
	if err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("failed to create match")
		return nil, &domain.StorageError{Op: "create match", Err: err}
	}

	s.logger.Info().Int64("match_id", match.ID).Str("date", match.Date).Msg("match created")
	return match, nil
}
