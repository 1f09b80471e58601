package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"asolens/internal/modkit/httpkit"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()

	if b.Name != "" || b.Prefix != "" {
		t.Fatalf("default Name/Prefix not empty: %q %q", b.Name, b.Prefix)
	}
	if b.Ports != nil {
		t.Fatalf("default Ports non-nil")
	}
	if len(b.Mw) != 0 {
		t.Fatalf("default Mw length = %d, want 0", len(b.Mw))
	}

	// default Subrouter is identity
	var r httpkit.Router
	if r2 := b.Subrouter(r); r2 != r {
		t.Fatalf("default Subrouter should be identity")
	}

	// default Register is a no-op
	defer func() {
		if v := recover(); v != nil {
			t.Fatalf("default Register panicked: %v", v)
		}
	}()
	b.Register(r)
}

func TestBuild_OptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	subCalled := 0
	regCalled := 0
	sub := func(in httpkit.Router) httpkit.Router {
		subCalled++
		return in
	}
	reg := func(in httpkit.Router) {
		regCalled++
	}

	type ports struct {
		X int
		Y string
	}
	p := ports{X: 7, Y: "ok"}

	b := Build(
		WithName("audits"),
		WithPrefix("/api/v1/audits"),
		WithMiddlewares(mid...),
		WithPorts[ports](p),
		WithSubrouter(sub),
		WithRegister(reg),
	)

	if b.Name != "audits" || b.Prefix != "/api/v1/audits" {
		t.Fatalf("Name/Prefix mismatch: %q %q", b.Name, b.Prefix)
	}
	if got, ok := b.Ports.(ports); !ok || got != p {
		t.Fatalf("Ports mismatch after Build")
	}

	// middleware slice is copied with order preserved
	if len(b.Mw) != 2 || fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Mw contents not preserved")
	}

	// mutating the source slice must not affect Built.Mw
	mid[0] = func(next http.Handler) http.Handler { return next }
	if fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Built.Mw changed after source slice mutation")
	}

	var r httpkit.Router
	if out := b.Subrouter(r); out != r {
		t.Fatalf("Subrouter did not return input Router")
	}
	if subCalled != 1 {
		t.Fatalf("Subrouter invocations = %d, want 1", subCalled)
	}

	b.Register(r)
	if regCalled != 1 {
		t.Fatalf("Register invocations = %d, want 1", regCalled)
	}
}
