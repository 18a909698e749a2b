package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestAttendanceUpsert_CountsByOutcome(t *testing.T) {
	m := New()

	m.AttendanceUpsert(true)
	m.AttendanceUpsert(false)
	m.AttendanceUpsert(false)

	body := scrape(t, m)
	assert.Contains(t, body, `rollcall_attendance_upserts_total{outcome="inserted"} 1`)
	assert.Contains(t, body, `rollcall_attendance_upserts_total{outcome="updated"} 2`)
}

func TestHandler_ExposesRequestCounter(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "GET /api/players", http.StatusOK, 5*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `rollcall_http_requests_total{method="GET",route="GET /api/players",status="200"} 1`)
	assert.Contains(t, body, "rollcall_http_request_duration_seconds_bucket")
}
