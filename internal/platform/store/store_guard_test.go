package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// txNoPing satisfies TxRunner but not Pinger
type txNoPing struct{}

func (txNoPing) Tx(ctx context.Context, fn func(q RowQuerier) error) error { return nil }
func (txNoPing) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	var z CommandTag
	return z, nil
}

func (txNoPing) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	var z Rows
	return z, nil
}

func (txNoPing) QueryRow(ctx context.Context, sql string, args ...any) Row {
	var z Row
	return z
}

// txWithPing adds a Ping that returns a preset error
type txWithPing struct {
	txNoPing
	err error
}

func (f *txWithPing) Ping(context.Context) error { return f.err }

func TestGuard_NilStore(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Guard(context.Background()); err == nil {
		t.Fatalf("nil store should return error")
	}
}

func TestGuard_NoSeams(t *testing.T) {
	t.Parallel()

	if err := (&Store{}).Guard(context.Background()); err != nil {
		t.Fatalf("expected nil error when no seams are set, got %v", err)
	}
}

func TestGuard_PGWithoutPingIsIgnored(t *testing.T) {
	t.Parallel()

	s := &Store{PG: txNoPing{}}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("expected nil error when PG is not a Pinger, got %v", err)
	}
}

func TestGuard_PGPing(t *testing.T) {
	t.Parallel()

	s := &Store{PG: &txWithPing{}}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("expected nil error when PG.Ping succeeds, got %v", err)
	}

	s = &Store{PG: &txWithPing{err: errors.New("boom")}}
	err := s.Guard(context.Background())
	if err == nil {
		t.Fatalf("expected non-nil error when PG.Ping fails")
	}
	if !strings.HasPrefix(err.Error(), "pg: ") {
		t.Fatalf("expected error prefixed with 'pg: ', got %q", err.Error())
	}
}
