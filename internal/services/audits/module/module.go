// Package module implements the audits module
package module

import (
	"net/http"

	"asolens/internal/modkit"
	"asolens/internal/modkit/httpkit"
	"asolens/internal/services/audits/domain"
	"asolens/internal/services/audits/repo"
	"asolens/internal/services/audits/service"
)

// Ports exposed by the audits module
type Ports struct {
	Runner domain.RunnerPort
	Reader domain.ReaderPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new audits module. Collaborator ports come in via
// WithPorts(domain.Ports); both are optional and the service degrades
// per their absence policies
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("audits"),
	}, opts...)...)

	var ports domain.Ports
	if b.Ports != nil {
		p, ok := b.Ports.(domain.Ports)
		if !ok {
			panic("audits module: expected WithPorts(audits/domain.Ports)")
		}
		ports = p
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.MinLength != 0 {
		cfg.MinLength = overrides.MinLength
	}
	if overrides.MaxLength != 0 {
		cfg.MaxLength = overrides.MaxLength
	}
	if overrides.HardCap != 0 {
		cfg.HardCap = overrides.HardCap
	}
	if overrides.MaxAlphabet != 0 {
		cfg.MaxAlphabet = overrides.MaxAlphabet
	}
	if overrides.TopN != 0 {
		cfg.TopN = overrides.TopN
	}
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.MaxCompetitors != 0 {
		cfg.MaxCompetitors = overrides.MaxCompetitors
	}
	if len(overrides.Stopwords) > 0 {
		cfg.Stopwords = overrides.Stopwords
	}

	svc := service.New(deps.PG, repo.NewPG(), ports.Catalog, ports.Signals, service.Config{
		MinLength:      cfg.MinLength,
		MaxLength:      cfg.MaxLength,
		HardCap:        cfg.HardCap,
		MaxAlphabet:    cfg.MaxAlphabet,
		TopN:           cfg.TopN,
		Workers:        cfg.Workers,
		MaxCompetitors: cfg.MaxCompetitors,
		Stopwords:      cfg.Stopwords,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc, Reader: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "audits" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }
