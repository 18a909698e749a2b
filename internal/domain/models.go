package domain

type Player struct {
	ID      int64
	Name    string
	Phone   *string // nil when not provided
	Balance float64
}

// Match dates are kept as the text the caller sent; ordering is lexicographic.
type Match struct {
	ID    int64
	Date  string
	Price *float64
}

type Attendance struct {
	ID       int64
	MatchID  int64
	PlayerID int64
	Paid     bool
}

// AttendanceEntry is one row of the full-roster view: every player, paid
// defaulting to false when no attendance record exists for the match.
type AttendanceEntry struct {
	PlayerID int64
	Name     string
	Phone    *string
	Paid     bool
}

// RosterEntry is one row of the rostered view: only players explicitly
// added to the match.
type RosterEntry struct {
	PlayerID int64
	Name     string
	Paid     bool
}
