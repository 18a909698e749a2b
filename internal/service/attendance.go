package service

import (
	"context"

	"rollcall/internal/constants"
	"rollcall/internal/domain"
	"rollcall/internal/metrics"
	"rollcall/internal/repository"

	"github.com/rs/zerolog"
)

type AttendanceService struct {
	repo    *repository.AttendanceRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewAttendanceService(repo *repository.AttendanceRepository, m *metrics.Metrics, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{repo: repo, metrics: m, logger: logger}
}

type SetPaidResult struct {
	Created bool
}

func (s *AttendanceService) AddPlayer(ctx context.Context, matchID, playerID int64) error {
	if err := validateIDs(matchID, playerID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.AddPlayer(ctx, matchID, playerID); err != nil {
		s.logger.Error().Err(err).Int64("match_id", matchID).Int64("player_id", playerID).Msg("failed to add player to match")
		return &domain.StorageError{Op: "add player to match", Err: err}
	}
	return nil
}

// FullRoster lists every player with the paid flag for the match, false when
// the player has no record.
func (s *AttendanceService) FullRoster(ctx context.Context, matchID int64) ([]domain.AttendanceEntry, error) {
	if matchID <= 0 {
		return nil, domain.NewValidationError("match_id", "Invalid match ID")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	entries, err := s.repo.FullRoster(ctx, matchID)
	if err != nil {
		s.logger.Error().Err(err).Int64("match_id", matchID).Msg("failed to load attendance")
		return nil, &domain.StorageError{Op: "load attendance", Err: err}
	}
	return entries, nil
}

func (s *AttendanceService) Rostered(ctx context.Context, matchID int64) ([]domain.RosterEntry, error) {
	if matchID <= 0 {
		return nil, domain.NewValidationError("match_id", "Invalid match ID")
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	entries, err := s.repo.Rostered(ctx, matchID)
	if err != nil {
		s.logger.Error().Err(err).Int64("match_id", matchID).Msg("failed to load match players")
		return nil, &domain.StorageError{Op: "load match players", Err: err}
	}
	return entries, nil
}

func (s *AttendanceService) SetPaid(ctx context.Context, matchID, playerID int64, paid bool) (SetPaidResult, error) {
	if err := validateIDs(matchID, playerID); err != nil {
		return SetPaidResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	created, err := s.repo.SetPaid(ctx, matchID, playerID, paid)
	if err != nil {
		s.logger.Error().Err(err).Int64("match_id", matchID).Int64("player_id", playerID).Msg("failed to set paid")
		return SetPaidResult{}, &domain.StorageError{Op: "set paid", Err: err}
	}

	s.metrics.AttendanceUpsert(created)
	s.logger.Info().
		Int64("match_id", matchID).
		Int64("player_id", playerID).
		Bool("paid", paid).
		Bool("created", created).
		Msg("attendance updated")

	return SetPaidResult{Created: created}, nil
}

func validateIDs(matchID, playerID int64) error {
	if matchID <= 0 {
		return domain.NewValidationError("match_id", "Invalid match ID")
	}
	if playerID <= 0 {
		return domain.NewValidationError("player_id", "Invalid player ID")
	}
	return nil
}
