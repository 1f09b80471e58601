package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type limitDTO struct {
	Limit int `json:"limit"`
}

func postJSON(t *testing.T, h Handler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestJSONHandler_Success(t *testing.T) {
	t.Parallel()

	h := JSONHandler[limitDTO](func(_ *http.Request, in limitDTO) (any, error) {
		return map[string]int{"doubled": in.Limit * 2}, nil
	})

	rr := postJSON(t, h, `{"limit":7}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, `"doubled":14`) {
		t.Fatalf("body %q missing doubled result", body)
	}
}

func TestJSONHandler_BindError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[limitDTO](func(_ *http.Request, _ limitDTO) (any, error) {
		t.Fatal("handler should not be called on bind error")
		return nil, nil
	})

	rr := postJSON(t, h, `{`)
	if rr.Code == http.StatusOK {
		t.Fatalf("expected non-200 on bind error, got %d", rr.Code)
	}
	if !strings.Contains(strings.ToLower(rr.Body.String()), "error") {
		t.Fatalf("expected error text in body, got %q", rr.Body.String())
	}
}

func TestJSONHandler_HandlerError(t *testing.T) {
	t.Parallel()

	h := JSONHandler[limitDTO](func(_ *http.Request, _ limitDTO) (any, error) {
		return nil, errors.New("boom")
	})

	rr := postJSON(t, h, `{"limit":1}`)
	if rr.Code == http.StatusOK {
		t.Fatalf("expected non-200 on handler error, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "boom") {
		t.Fatalf("expected error message in body, got %q", rr.Body.String())
	}
}
