package api

type Player struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Balance float64 `json:"balance"`
}

type Match struct {
	ID    int64    `json:"id"`
	Date  string   `json:"date"`
	Price *float64 `json:"price,omitempty"`
}

type AttendanceEntry struct {
	PlayerID int64   `json:"player_id"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Paid     bool    `json:"paid"`
}

type RosterEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Paid bool   `json:"paid"`
}

type SetPaidResponse struct {
	Inserted bool `json:"inserted"`
	Updated  bool `json:"updated"`
}

type Snapshot struct {
	Players []Player
	Matches []Match
}

type createPlayerRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

type createMatchRequest struct {
	Date  string   `json:"date"`
	Price *float64 `json:"price,omitempty"`
}

type playerIDRequest struct {
	PlayerID int64 `json:"player_id"`
}

type setPaidRequest struct {
	MatchID  int64 `json:"match_id"`
	PlayerID int64 `json:"player_id"`
	Paid     bool  `json:"paid"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}
