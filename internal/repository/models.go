package repository

import (
	"database/sql"

	"rollcall/internal/domain"
)

type playerRow struct {
	ID      int64          `db:"id"`
	Name    string         `db:"name"`
	Phone   sql.NullString `db:"phone"`
	Balance float64        `db:"balance"`
}

func (r playerRow) toDomain() domain.Player {
	return domain.Player{
		ID:      r.ID,
		Name:    r.Name,
		Phone:   nullStringPtr(r.Phone),
		Balance: r.Balance,
	}
}

type matchRow struct {
	ID    int64           `db:"id"`
	Date  string          `db:"date"`
	Price sql.NullFloat64 `db:"price"`
}

func (r matchRow) toDomain() domain.Match {
	m := domain.Match{ID: r.ID, Date: r.Date}
	if r.Price.Valid {
		price := r.Price.Float64
		m.Price = &price
	}
	return m
}

type attendanceEntryRow struct {
	PlayerID int64          `db:"player_id"`
	Name     string         `db:"name"`
	Phone    sql.NullString `db:"phone"`
	Paid     bool           `db:"paid"`
}

type rosterEntryRow struct {
	PlayerID int64  `db:"id"`
	Name     string `db:"name"`
	Paid     bool   `db:"paid"`
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
