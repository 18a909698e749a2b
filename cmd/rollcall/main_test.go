package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rollcall/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeServer(t *testing.T) *api.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/players", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Ali","balance":0},{"id":2,"name":"Jay","phone":"555","balance":2.5}]`))
	})
	mux.HandleFunc("GET /api/matches", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":3,"date":"2024-06-01","price":6}]`))
	})
	mux.HandleFunc("POST /api/attendance", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"inserted":true}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL)
}

func TestRun_Status(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), fakeServer(t), &out, []string{"status"}))

	assert.Contains(t, out.String(), "players  2")
	assert.Contains(t, out.String(), "2024-06-01 (#3)")
}

func TestRun_Players(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), fakeServer(t), &out, []string{"players"}))

	assert.Contains(t, out.String(), "Jay")
	assert.Contains(t, out.String(), "2.50")
}

func TestRun_Pay(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), fakeServer(t), &out, []string{"pay", "3", "1", "false"}))

	assert.Contains(t, out.String(), "match 3 player 1 paid=false (inserted)")
}

func TestRun_UsageErrors(t *testing.T) {
	c := api.NewClient("http://127.0.0.1:0")

	for _, args := range [][]string{
		nil,
		{"unknown"},
		{"enroll", "1"},
		{"roster"},
		{"add-player"},
		{"add-match", "a", "b", "c"},
	} {
		err := run(context.Background(), c, &bytes.Buffer{}, args)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	c := api.NewClient("http://127.0.0.1:0")

	err := run(context.Background(), c, &bytes.Buffer{}, []string{"roster", "abc"})
	assert.ErrorContains(t, err, `invalid id "abc"`)

	err = run(context.Background(), c, &bytes.Buffer{}, []string{"pay", "1", "2", "maybe"})
	assert.ErrorContains(t, err, `invalid paid flag "maybe"`)
}
