// Package domain defines the signal provider port feeding the scorer
package domain

import (
	"context"

	"asolens/internal/core/priority"
)

// ProviderPort supplies optional market signals per canonical phrase
// text. A provider may return any subset, including nothing at all; the
// scorer's midpoint policy absorbs every absence
type ProviderPort interface {
	PhraseSignals(ctx context.Context, texts []string) (map[string]priority.Signals, error)
}
