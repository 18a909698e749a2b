package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"rollcall/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	ServerPort         string
	DBPath             string
	StaticDir          string
	LogLevel           string
	CORSAllowedOrigins []string
	SeedDefaultPlayers bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DEFAULT_PLAYERS", "true"))
	if err != nil {
		return nil, fmt.Errorf("parse SEED_DEFAULT_PLAYERS: %w", err)
	}

	cfg := &Config{
		ServerPort:         getEnv("PORT", constants.DefaultPort),
		DBPath:             getEnv("DB_PATH", constants.DefaultDBPath),
		StaticDir:          strings.TrimSpace(os.Getenv("STATIC_DIR")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SeedDefaultPlayers: seed,
	}

	port, err := strconv.Atoi(cfg.ServerPort)
	if err != nil {
		return nil, fmt.Errorf("parse PORT: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("static_dir", cfg.StaticDir).
		Str("log_level", cfg.LogLevel).
		Strs("cors_allowed_origins", cfg.CORSAllowedOrigins).
		Bool("seed_default_players", cfg.SeedDefaultPlayers).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var Module = fx.Provide(Load)
