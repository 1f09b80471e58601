package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCaptureWriter_RecordsStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

	cw.WriteHeader(http.StatusCreated)
	if _, err := cw.Write([]byte("phrases")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := cw.Write([]byte("!")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if cw.status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", cw.status)
	}
	if cw.bytes != len("phrases")+1 {
		t.Fatalf("bytes = %d, want %d", cw.bytes, len("phrases")+1)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("recorder code = %d, want 201", rec.Code)
	}
}
