package repository

import (
	"context"
	"fmt"

	"rollcall/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

type AttendanceRepository struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewAttendanceRepository(db *sqlx.DB, logger zerolog.Logger) *AttendanceRepository {
	return &AttendanceRepository{
		db:     db,
		logger: logger,
	}
}

// AddPlayer records the player for the match with paid left at its default.
// An existing record for the pair is left untouched.
func (r *AttendanceRepository) AddPlayer(ctx context.Context, matchID, playerID int64) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO attendance (match_id, player_id) VALUES (?, ?)
		 ON CONFLICT (match_id, player_id) DO NOTHING`,
		matchID, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to add player to match: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil {
		r.logger.Debug().
			Int64("match_id", matchID).
			Int64("player_id", playerID).
			Bool("inserted", n > 0).
			Msg("add player to match")
	}
	return nil
}

// SetPaid inserts the record if the pair is absent and updates paid
// otherwise. The insert is arbitrated by UNIQUE(match_id, player_id), so
// two concurrent calls on a new pair cannot both create a row.
func (r *AttendanceRepository) SetPaid(ctx context.Context, matchID, playerID int64, paid bool) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO attendance (match_id, player_id, paid) VALUES (?, ?, ?)
		 ON CONFLICT (match_id, player_id) DO NOTHING`,
		matchID, playerID, paid,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read inserted rows: %w", err)
	}

	if inserted == 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE attendance SET paid = ? WHERE match_id = ? AND player_id = ?`,
			paid, matchID, playerID,
		); err != nil {
			return false, fmt.Errorf("failed to update attendance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit attendance: %w", err)
	}

	created := inserted > 0
	r.logger.Debug().
		Int64("match_id", matchID).
		Int64("player_id", playerID).
		Bool("paid", paid).
		Bool("created", created).
		Msg("attendance upserted")

	return created, nil
}

// FullRoster returns every player, left-joined with the match's attendance.
func (r *AttendanceRepository) FullRoster(ctx context.Context, matchID int64) ([]domain.AttendanceEntry, error) {
	var rows []attendanceEntryRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT p.id AS player_id, p.name, p.phone, COALESCE(a.paid, 0) AS paid
		 FROM players p
		 LEFT JOIN attendance a ON a.player_id = p.id AND a.match_id = ?
		 ORDER BY p.id`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select full roster: %w", err)
	}

	entries := make([]domain.AttendanceEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.AttendanceEntry{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Phone:    nullStringPtr(row.Phone),
			Paid:     row.Paid,
		}
	}
	return entries, nil
}

// Rostered returns only players with an attendance record for the match.
func (r *AttendanceRepository) Rostered(ctx context.Context, matchID int64) ([]domain.RosterEntry, error) {
	var rows []rosterEntryRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT p.id, p.name, a.paid
		 FROM attendance a
		 JOIN players p ON p.id = a.player_id
		 WHERE a.match_id = ?
		 ORDER BY p.id`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select rostered players: %w", err)
	}

	entries := make([]domain.RosterEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.RosterEntry{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Paid:     row.Paid,
		}
	}
	return entries, nil
}
