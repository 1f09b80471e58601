package store

import (
	"context"
	"testing"
)

// TestRequestID_SetAndGet sets a request id and retrieves it
func TestRequestID_SetAndGet(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	id, ok := RequestID(ctx)
	if !ok {
		t.Fatalf("RequestID not found")
	}
	if id != "req-123" {
		t.Fatalf("RequestID mismatch got=%q want=%q", id, "req-123")
	}
}

// TestRequestID_Absent verifies the miss path on a bare context
func TestRequestID_Absent(t *testing.T) {
	t.Parallel()

	if id, ok := RequestID(context.Background()); ok || id != "" {
		t.Fatalf("expected miss, got id=%q ok=%v", id, ok)
	}
}

// TestRequestID_EmptyValue treats an empty id as absent
func TestRequestID_EmptyValue(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "")
	if id, ok := RequestID(ctx); ok || id != "" {
		t.Fatalf("expected miss for empty id, got id=%q ok=%v", id, ok)
	}
}

// TestRequestID_ParentUntouched verifies the parent context is not mutated
func TestRequestID_ParentUntouched(t *testing.T) {
	t.Parallel()

	base := context.Background()
	_ = WithRequestID(base, "req-123")

	if id, ok := RequestID(base); ok || id != "" {
		t.Fatalf("parent context leaked request id id=%q ok=%v", id, ok)
	}
}

// TestRequestID_Overwrite keeps the innermost value
func TestRequestID_Overwrite(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "first")
	ctx = WithRequestID(ctx, "second")

	if id, _ := RequestID(ctx); id != "second" {
		t.Fatalf("RequestID mismatch got=%q want=%q", id, "second")
	}
}
