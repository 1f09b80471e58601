package domain

import (
	"context"

	catalogdom "asolens/internal/services/catalog/domain"
	signalsdom "asolens/internal/services/signals/domain"
)

// RunnerPort executes one audit end to end
type RunnerPort interface {
	Run(ctx context.Context, in RunInput) (AuditResult, error)
}

// ReaderPort reads stored audit snapshots
type ReaderPort interface {
	Get(ctx context.Context, auditID string) (AuditResult, error)
	Recent(ctx context.Context, appID string, limit int) ([]AuditSummary, error)
}

// Ports are dependencies injected into the audits module.
// Catalog may be nil when every input carries inline fields; Signals may
// be nil, in which case the scorer's midpoint policy applies throughout
type Ports struct {
	Catalog catalogdom.LookupPort
	Signals signalsdom.ProviderPort
}
