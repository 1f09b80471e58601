package store

import (
	"context"
	"strings"
	"testing"
	"time"
)

// port 1 is closed everywhere, so pings fail fast without DNS
const unreachablePG = "postgres://u:p@127.0.0.1:1/asolens?sslmode=disable"

func unreachableConfig() Config {
	return Config{
		PG: PGConfig{
			URL:         unreachablePG,
			MaxConns:    2,
			SlowQueryMs: 500,
		},
	}
}

func TestOpenPG_CanceledParentFailsFast(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Store{}
	start := time.Now()
	txr, err := openPG(ctx, unreachableConfig(), s)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error on canceled context, got TxRunner %T", txr)
	}
	if txr != nil {
		t.Fatalf("TxRunner should be nil on failure, got %T", txr)
	}
	if s.PG != nil {
		t.Fatalf("failed open must not publish a pool on the Store")
	}
	if elapsed > time.Second {
		t.Fatalf("canceled open should return quickly, took %v", elapsed)
	}
}

func TestOpenPG_RetryBudgetConfigurable(t *testing.T) {
	t.Parallel()

	cfg := unreachableConfig()
	cfg.PG.ConnectRetries = 2
	cfg.PG.PingTimeout = 200 * time.Millisecond

	_, err := openPG(context.Background(), cfg, &Store{})
	if err == nil {
		t.Fatal("expected error against the unreachable port")
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Fatalf("retry budget not honored: %v", err)
	}
}

func TestOpenPG_CancelDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// fire the cancel once the first 150ms backoff sleep is underway so
	// the loop's ctx.Err() branch runs
	go func() {
		time.Sleep(160 * time.Millisecond)
		cancel()
	}()

	s := &Store{}
	start := time.Now()
	txr, err := openPG(ctx, unreachableConfig(), s)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected error after cancellation, got TxRunner %T", txr)
	}
	if elapsed < 140*time.Millisecond {
		t.Fatalf("expected at least one backoff sleep, got %v", elapsed)
	}
	if elapsed > time.Second {
		t.Fatalf("cancellation should short-circuit the retry loop, took %v", elapsed)
	}
}
