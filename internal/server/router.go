package server

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"rollcall/internal/config"
	"rollcall/internal/metrics"
	"rollcall/internal/middleware"
	"rollcall/web"

	"github.com/rs/zerolog"
)

func NewRouter(
	h *Handler,
	static fs.FS,
	m *metrics.Metrics,
	cfg *config.Config,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/players", h.ListPlayers)
	mux.HandleFunc("POST /api/players", h.CreatePlayer)
	mux.HandleFunc("GET /api/matches", h.ListMatches)
	mux.HandleFunc("POST /api/matches", h.CreateMatch)
	mux.HandleFunc("POST /api/match/{matchID}/add-player", h.AddPlayerToMatch)
	mux.HandleFunc("GET /api/match/{matchID}/players", h.ListRosteredPlayers)
	mux.HandleFunc("POST /api/match/{matchID}/toggle-paid", h.TogglePaid)
	mux.HandleFunc("GET /api/attendance/{matchID}", h.ListAttendance)
	mux.HandleFunc("POST /api/attendance", h.SetAttendance)

	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.Handle("GET /metrics", m.Handler())

	mux.Handle("GET /", http.FileServerFS(static))

	return middleware.Chain(mux,
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RequestID(logger),
		middleware.Recover(logger),
		middleware.Metrics(m),
	)
}

// StaticFS serves STATIC_DIR when set, otherwise the embedded frontend.
func StaticFS(cfg *config.Config, logger zerolog.Logger) (fs.FS, error) {
	if cfg.StaticDir == "" {
		logger.Info().Msg("serving embedded frontend")
		return web.Static()
	}

	dir, err := filepath.Abs(cfg.StaticDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		return nil, err
	}

	logger.Info().Str("path", dir).Msg("serving static files")
	return os.DirFS(dir), nil
}
