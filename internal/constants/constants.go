package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ClientTimeout   = 10 * time.Second

	HealthCheckTimeout = 2 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBusyTimeoutMS   = 5000
)

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)

const (
	DefaultPort   = "3000"
	DefaultDBPath = "players.db"
)

// DefaultPlayerNames is the roster inserted into an empty players table.
var DefaultPlayerNames = []string{"Ali", "Jay", "Mo", "Ben", "Chris"}
