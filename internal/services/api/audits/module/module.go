// Package module wires the audits API endpoints into the router
package module

import (
	"net/http"

	modkit "asolens/internal/modkit"
	"asolens/internal/modkit/httpkit"
	str "asolens/internal/platform/strings"

	auditshttp "asolens/internal/services/api/audits/http"
	auditdom "asolens/internal/services/audits/domain"
)

// Ports required by the audits API module
type Ports struct {
	Runner auditdom.RunnerPort
	Reader auditdom.ReaderPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the audits API module. The worker module's ports must
// be injected via WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("audits-api"),
		modkit.WithPrefix("/audits"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok {
		panic("audits api module: expected WithPorts(audits api Ports)")
	}
	if ports.Runner == nil || ports.Reader == nil {
		panic("audits api module: Ports missing Runner or Reader")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		auditshttp.Register(r, auditshttp.Deps{
			Runner: ports.Runner,
			Reader: ports.Reader,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "audits-api") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
