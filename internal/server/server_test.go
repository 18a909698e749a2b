package server

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"rollcall/internal/config"
	"rollcall/internal/database"
	"rollcall/internal/metrics"
	"rollcall/internal/repository"
	"rollcall/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *sqlx.DB) {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		DBPath:             filepath.Join(t.TempDir(), "test.db"),
		CORSAllowedOrigins: []string{"*"},
	}

	db, err := database.New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := metrics.New()
	h := NewHandler(
		service.NewPlayerService(repository.NewPlayerRepository(db, logger), logger),
		service.NewMatchService(repository.NewMatchRepository(db, logger), logger),
		service.NewAttendanceService(repository.NewAttendanceRepository(db, logger), m, logger),
		db,
	)
	static := fstest.MapFS{
		"index.html": {Data: []byte("<html><title>Rollcall</title></html>")},
	}

	return NewRouter(h, static, m, cfg, logger), db
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAttendanceScenario(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/matches", `{"date":"2024-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"id":1,"date":"2024-06-01"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/players", `{"name":"Ana"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/players", `{"name":"Bo"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":2,"name":"Bo"}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/attendance", `{"match_id":1,"player_id":1,"paid":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"inserted":true}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/attendance", `{"match_id":1,"player_id":1,"paid":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":true}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/attendance/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"player_id":1,"name":"Ana","paid":false},{"player_id":2,"name":"Bo","paid":false}]`, rec.Body.String())
}

func TestListEndpoints_EmptyArrays(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{"/api/players", "/api/matches", "/api/attendance/1", "/api/match/1/players"} {
		rec := do(t, h, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `[]`, rec.Body.String(), path)
	}
}

func TestListPlayers_IncludesOptionalFields(t *testing.T) {
	h, _ := newTestRouter(t)

	do(t, h, http.MethodPost, "/api/players", `{"name":"Ana","phone":"555-0100"}`)
	do(t, h, http.MethodPost, "/api/players", `{"name":"Bo","phone":"  "}`)

	rec := do(t, h, http.MethodGet, "/api/players", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":1,"name":"Ana","phone":"555-0100","balance":0},
		{"id":2,"name":"Bo","balance":0}
	]`, rec.Body.String())
}

func TestListMatches_DateDescendingAsText(t *testing.T) {
	h, _ := newTestRouter(t)

	do(t, h, http.MethodPost, "/api/matches", `{"date":"2024-01-10"}`)
	do(t, h, http.MethodPost, "/api/matches", `{"date":"2024-05-01","price":12.5}`)

	rec := do(t, h, http.MethodGet, "/api/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"date":"2024-05-01","price":12.5},{"id":1,"date":"2024-01-10"}]`, rec.Body.String())
}

func TestAddPlayerAndToggle(t *testing.T) {
	h, _ := newTestRouter(t)

	do(t, h, http.MethodPost, "/api/matches", `{"date":"2024-06-01"}`)
	do(t, h, http.MethodPost, "/api/players", `{"name":"Ana"}`)
	do(t, h, http.MethodPost, "/api/players", `{"name":"Bo"}`)
	do(t, h, http.MethodPost, "/api/players", `{"name":"Cy"}`)

	rec := do(t, h, http.MethodPost, "/api/match/1/add-player", `{"player_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/match/1/add-player", `{"player_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/match/1/toggle-paid", `{"player_id":1,"paid":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/match/1/toggle-paid", `{"player_id":3,"paid":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/match/1/players", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Ana","paid":true},{"id":3,"name":"Cy","paid":true}]`, rec.Body.String())
}

func TestValidationErrors(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   string
	}{
		{"missing name", http.MethodPost, "/api/players", `{}`, `{"error":"Name is required"}`},
		{"blank name", http.MethodPost, "/api/players", `{"name":"   "}`, `{"error":"Name is required"}`},
		{"missing date", http.MethodPost, "/api/matches", `{"price":5}`, `{"error":"Date is required"}`},
		{"missing player id", http.MethodPost, "/api/attendance", `{"match_id":1,"paid":true}`, `{"error":"match_id and player_id required"}`},
		{"missing match id", http.MethodPost, "/api/attendance", `{"player_id":1}`, `{"error":"match_id and player_id required"}`},
		{"toggle without player", http.MethodPost, "/api/match/1/toggle-paid", `{"paid":true}`, `{"error":"match_id and player_id required"}`},
		{"non-numeric match", http.MethodGet, "/api/attendance/abc", "", `{"error":"Invalid match ID"}`},
		{"zero match", http.MethodPost, "/api/match/0/add-player", `{"player_id":1}`, `{"error":"Invalid match ID"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}

	rec := do(t, h, http.MethodGet, "/api/players", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMalformedJSON(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/players", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON payload")
}

func TestStorageErrors(t *testing.T) {
	h, db := newTestRouter(t)

	do(t, h, http.MethodPost, "/api/matches", `{"date":"2024-06-01"}`)

	rec := do(t, h, http.MethodPost, "/api/attendance", `{"match_id":1,"player_id":99,"paid":true}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)

	require.NoError(t, db.Close())

	rec = do(t, h, http.MethodGet, "/api/players", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	do(t, h, http.MethodPost, "/api/matches", `{"date":"2024-06-01"}`)
	do(t, h, http.MethodPost, "/api/players", `{"name":"Ana"}`)
	do(t, h, http.MethodPost, "/api/attendance", `{"match_id":1,"player_id":1,"paid":true}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `rollcall_attendance_upserts_total{outcome="inserted"} 1`)
	assert.Contains(t, body, `rollcall_http_requests_total{method="POST",route="POST /api/attendance",status="200"} 1`)
}

func TestStaticFrontend(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rollcall")
}

func TestRequestIDHeader(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/players", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestStaticFS(t *testing.T) {
	_, err := StaticFS(&config.Config{StaticDir: t.TempDir()}, zerolog.Nop())
	assert.Error(t, err, "a directory without index.html is rejected")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("local"), 0o644))
	fsys, err := StaticFS(&config.Config{StaticDir: dir}, zerolog.Nop())
	require.NoError(t, err)
	data, err := fs.ReadFile(fsys, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "local", string(data))

	embedded, err := StaticFS(&config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	_, err = fs.Stat(embedded, "script.js")
	assert.NoError(t, err)
}
