package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestConstructorsAndUnwrap(t *testing.T) {
	// nil *Error renders "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad audit input")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeJSON, "bad json at byte %d", 12)
	if got := e2.Error(); got != "bad json at byte 12" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("root")
	e3 := Wrap(src, ErrorCodeDB, "insert phrases")
	if u := stderrs.Unwrap(e3); u == nil || u.Error() != "root" {
		t.Fatalf("Wrap did not keep orig")
	}
	if CodeOf(e3) != ErrorCodeDB {
		t.Fatalf("CodeOf(Wrap) = %v", CodeOf(e3))
	}

	// Error() renders message + ": " + orig
	e4 := Wrapf(src, ErrorCodeUnavailable, "lookup %s", "284882215")
	if want := "lookup 284882215: root"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}
}

func TestAsAndWithField(t *testing.T) {
	src := stderrs.New("root")

	e := Wrapf(src, ErrorCodeForbidden, "nope")
	if got, ok := As(e); !ok || got.Code() != ErrorCodeForbidden {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// WithField is copy-on-write
	base := Wrap(src, ErrorCodeInvalidArgument, "oops")
	withF := WithField(base, "app_id")
	if fe, ok := As(withF); !ok || fe.Field() != "app_id" {
		t.Fatalf("WithField failed")
	}
	if fe0, _ := As(base); fe0.Field() != "" {
		t.Fatalf("copy-on-write mutated original")
	}

	// foreign errors pass through unchanged
	if WithField(src, "x") != src {
		t.Fatalf("WithField should not wrap foreign errors")
	}
}

func TestWirePayloads(t *testing.T) {
	src := stderrs.New("root")

	w := (&Error{code: ErrorCodeValidation, msg: "nope", field: "country"}).ToWire()
	if w.Code != ErrorCodeValidation || w.Message != "nope" || w.Field != "country" {
		t.Fatalf("ToWire mismatch: %+v", w)
	}

	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	// foreign error maps to Unknown with its own message
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	// ours uses only msg, not "msg: orig"
	e := Wrapf(src, ErrorCodeForbidden, "nope here")
	if wf := WireFrom(e); wf.Code != ErrorCodeForbidden || wf.Message != "nope here" {
		t.Fatalf("WireFrom(ours) mismatch: %+v", wf)
	}
}

func TestSugarRootAndHTTP(t *testing.T) {
	src := stderrs.New("root")

	if !IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) {
		t.Fatalf("sugar helpers code mismatch")
	}

	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}
	if st, w := HTTP(InvalidArgf("bad")); st != http.StatusUnprocessableEntity || w.Message != "bad" {
		t.Fatalf("HTTP(InvalidArgf) = %d %+v", st, w)
	}
	if st := HTTPStatus(Wrap(src, ErrorCodeDB, "db")); st != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus mismatch")
	}

	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got == nil || got.Error() != "root" {
		t.Fatalf("Root() failed, got %v", got)
	}

	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound code mismatch")
	}
}
