package server

import "rollcall/internal/domain"

type playerResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Balance float64 `json:"balance"`
}

type createPlayerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type matchResponse struct {
	ID    int64    `json:"id"`
	Date  string   `json:"date"`
	Price *float64 `json:"price,omitempty"`
}

type rosterEntryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Paid bool   `json:"paid"`
}

type attendanceEntryResponse struct {
	PlayerID int64   `json:"player_id"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Paid     bool    `json:"paid"`
}

type setAttendanceResponse struct {
	Inserted bool `json:"inserted,omitempty"`
	Updated  bool `json:"updated,omitempty"`
}

func toPlayerResponse(p domain.Player) playerResponse {
	return playerResponse{ID: p.ID, Name: p.Name, Phone: p.Phone, Balance: p.Balance}
}

func toMatchResponse(m domain.Match) matchResponse {
	return matchResponse{ID: m.ID, Date: m.Date, Price: m.Price}
}
