package store

import (
	"context"
	"fmt"
	"time"

	"asolens/internal/platform/store/pg"
)

// openPG brings up the pgx pool, waits for it to answer, then wraps it
// in the sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	if err := warmPool(ctx, p, cfg.PG.ConnectRetries, cfg.PG.PingTimeout); err != nil {
		p.Close()
		return nil, err
	}

	// only a healthy pool gets published on the Store
	a := newPGAdapter(p)
	s.PG = a
	return a, nil
}

// warmPool pings with capped exponential backoff until the database
// answers. Pings go straight to the pool so the tracer stays quiet
func warmPool(ctx context.Context, p *pg.PG, attempts int, pingTimeout time.Duration) error {
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)
	if attempts <= 0 {
		attempts = 20
	}
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		time.Sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
