package httpkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chain applies the stack so the first element runs outermost
func chain(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack_RequestReachesHandler(t *testing.T) {
	stack := CommonStack()
	if len(stack) == 0 {
		t.Fatalf("CommonStack returned no middleware")
	}

	hits := 0
	leaf := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("X-Leaf", "reached")
		w.WriteHeader(http.StatusNoContent)
	})
	root := chain(leaf, stack)

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/audits/run", nil))

	if hits != 1 {
		t.Fatalf("leaf handler hits = %d, want 1", hits)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("X-Leaf") != "reached" {
		t.Errorf("leaf header missing, headers=%v", rec.Header())
	}
}

func TestCommonStack_HeartbeatShortCircuits(t *testing.T) {
	// /health is answered by the stack itself, the leaf never runs
	root := chain(http.NotFoundHandler(), CommonStack())

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("/health status = %d body=%s, want 200", rec.Code, rec.Body.String())
	}
}

func TestCommonStack_PanicBecomesJSON500(t *testing.T) {
	leaf := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("scorer blew up")
	})
	root := chain(leaf, CommonStack())

	rec := httptest.NewRecorder()
	root.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/audits/run", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
}
