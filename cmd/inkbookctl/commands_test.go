package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	booked := map[string]bool{"2025-03-10|14:00": true}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Query().Get("debug") == "1":
			_ = json.NewEncoder(w).Encode(models.StoreDiagnostics{OK: true, BackendConfigured: true, Reachable: true, Backend: "redis"})
		case r.Method == http.MethodGet:
			resp := models.BookingsResponse{Shared: true}
			for k := range booked {
				b, _ := models.SlotKey(k).Booking()
				resp.Bookings = append(resp.Bookings, b)
			}
			_ = json.NewEncoder(w).Encode(resp)
		case r.Method == http.MethodPost && r.Header.Get("Authorization") != "Bearer admin-token":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Unauthorized admin access"}`))
		case r.Method == http.MethodPost:
			var req models.ToggleRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			k := req.Date + models.SlotSeparator + req.Time
			booked[k] = !booked[k]
			_ = json.NewEncoder(w).Encode(models.ToggleResponse{Booked: booked[k], Date: req.Date, Time: req.Time})
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--url", srv.URL + "/api"}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestListCommand(t *testing.T) {
	out := run(t, fakeServer(t), "list")
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "2025-03-10")
	assert.Contains(t, out, "14:00")
}

func TestToggleCommand(t *testing.T) {
	srv := fakeServer(t)
	assert.Contains(t, run(t, srv, "--token", "admin-token", "toggle", "2025-03-10", "14:00"), "is now available")
	assert.Contains(t, run(t, srv, "--token", "admin-token", "toggle", "2025-03-10", "14:00"), "is now booked")
}

func TestToggleTokenFromEnv(t *testing.T) {
	srv := fakeServer(t)
	t.Setenv("INKBOOK_TOKEN", "admin-token")
	assert.Contains(t, run(t, srv, "toggle", "2025-03-10", "14:00"), "is now available")
}

func TestToggleWithoutToken(t *testing.T) {
	srv := fakeServer(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--url", srv.URL + "/api", "toggle", "2025-03-10", "14:00"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestDiagCommand(t *testing.T) {
	assert.Equal(t, "backend=redis shared=true reachable=true\n", run(t, fakeServer(t), "diag"))
}

func TestToggleNeedsTwoArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"toggle", "2025-03-10"})
	assert.Error(t, cmd.Execute())
}
