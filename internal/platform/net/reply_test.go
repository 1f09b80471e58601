package net_test

import (
	"net/http"
	"testing"

	perr "asolens/internal/platform/errors"
	pnet "asolens/internal/platform/net"
)

func TestSuccessEnvelopes(t *testing.T) {
	t.Parallel()

	phrases := []string{"habit tracker", "daily habit tracker"}

	status, w := pnet.OK(phrases, "req-ok")
	if status != http.StatusOK || w.StatusCode != http.StatusOK {
		t.Fatalf("OK status: %d / %+v", status, w)
	}
	if w.Status != http.StatusText(http.StatusOK) || w.RequestID != "req-ok" {
		t.Fatalf("OK envelope fields: %+v", w)
	}
	if got := w.Data.([]string); len(got) != 2 || got[0] != "habit tracker" {
		t.Fatalf("OK data: %+v", w.Data)
	}

	status, w = pnet.Created(map[string]string{"audit_id": "a1"}, "req-created")
	if status != http.StatusCreated || w.StatusCode != http.StatusCreated {
		t.Fatalf("Created status: %d / %+v", status, w)
	}
	if w.Data.(map[string]string)["audit_id"] != "a1" {
		t.Fatalf("Created data: %+v", w.Data)
	}

	status, w = pnet.NoContent("req-nc")
	if status != http.StatusNoContent || w.StatusCode != http.StatusNoContent {
		t.Fatalf("NoContent status: %d / %+v", status, w)
	}
	if w.Data != nil || w.Error != "" || w.Code != 0 {
		t.Fatalf("NoContent should carry nothing: %+v", w)
	}
}

func TestError_NilDegradesToOK(t *testing.T) {
	t.Parallel()

	status, w := pnet.Error(nil, "req-nil")

	if status != http.StatusOK || w.StatusCode != http.StatusOK {
		t.Fatalf("status: %d / %+v", status, w)
	}
	if w.Error != "" || w.Code != 0 {
		t.Fatalf("nil error should produce clean envelope: %+v", w)
	}
	if w.RequestID != "req-nil" {
		t.Fatalf("request id lost: %+v", w)
	}
}

func TestError_CodedErrorCarriesCodeAndStatus(t *testing.T) {
	t.Parallel()

	err := perr.New(perr.ErrorCodeNotFound, "audit not found")
	status, w := pnet.Error(err, "req-err")

	if status != http.StatusNotFound || w.StatusCode != http.StatusNotFound {
		t.Fatalf("status: %d / %+v", status, w)
	}
	if w.Code != perr.ErrorCodeNotFound {
		t.Fatalf("code = %v, want not found", w.Code)
	}
	if w.Error == "" {
		t.Fatal("error message missing from envelope")
	}
	if w.Data != nil {
		t.Fatalf("error envelope must not carry data: %+v", w.Data)
	}
}

func TestError_GenericErrorIsServerSide(t *testing.T) {
	t.Parallel()

	status, w := pnet.Error(plainErr("scorer exploded"), "req-gen")

	if status < 400 || status > 599 {
		t.Fatalf("generic error status = %d, want 4xx/5xx", status)
	}
	if w.Error == "" {
		t.Fatal("error message missing")
	}
}

type plainErr string

func (e plainErr) Error() string { return string(e) }
