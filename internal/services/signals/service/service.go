// Package service provides signal provider implementations
package service

import (
	"context"

	"asolens/internal/core/priority"
)

// Static serves signals from a fixed seed map. It backs tests, the CLI
// runner, and any deploy without a live signal vendor wired in
type Static struct {
	seed map[string]priority.Signals
}

// NewStatic constructs a Static provider. A nil seed is a valid
// provider that simply has nothing to say
func NewStatic(seed map[string]priority.Signals) *Static {
	return &Static{seed: seed}
}

// PhraseSignals implements domain.ProviderPort
func (s *Static) PhraseSignals(_ context.Context, texts []string) (map[string]priority.Signals, error) {
	out := make(map[string]priority.Signals, len(texts))
	for _, t := range texts {
		if sig, ok := s.seed[t]; ok {
			out[t] = sig
		}
	}
	return out, nil
}
