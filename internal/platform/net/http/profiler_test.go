package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"asolens/internal/platform/config"
	phttp "asolens/internal/platform/net/http"
)

func profilerRouter(t *testing.T, enabled bool) phttp.Router {
	t.Helper()
	r := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(r, "/debug", enabled)
	return r
}

func TestMountProfiler_Enabled(t *testing.T) {
	r := profilerRouter(t, true)

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s = %d, want 200", path, rec.Code)
		}
	}

	// the bare prefix either redirects into /pprof/ or 404s, both acceptable
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug", nil))
	switch rec.Code {
	case http.StatusMovedPermanently, http.StatusPermanentRedirect, http.StatusNotFound:
	default:
		t.Fatalf("/debug = %d, want redirect or 404", rec.Code)
	}
}

func TestMountProfiler_Disabled(t *testing.T) {
	r := profilerRouter(t, false)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler = %d, want 404", rec.Code)
	}
}
