package modkit

import (
	"testing"

	phttp "asolens/internal/platform/net/http"
)

type fakeAudits struct {
	mounted bool
	ports   any
}

func (f *fakeAudits) MountRoutes(phttp.Router) { f.mounted = true }
func (f *fakeAudits) Ports() any               { return f.ports }
func (f *fakeAudits) Name() string             { return "audits" }

var _ Module = (*fakeAudits)(nil)

func TestModuleContract(t *testing.T) {
	t.Parallel()

	type auditPorts struct{ Runner any }
	m := &fakeAudits{ports: auditPorts{}}

	m.MountRoutes(nil)
	if !m.mounted {
		t.Fatal("MountRoutes did not reach the module")
	}
	if _, ok := m.Ports().(auditPorts); !ok {
		t.Fatalf("Ports() = %T", m.Ports())
	}
	if m.Name() != "audits" {
		t.Fatalf("Name() = %q", m.Name())
	}
}

func TestBuilderShape(t *testing.T) {
	t.Parallel()

	var build Builder = func(Deps, ...Option) Module {
		return &fakeAudits{ports: "wired"}
	}

	m := build(Deps{})
	if m == nil {
		t.Fatal("builder returned nil")
	}
	if m.Ports() != "wired" {
		t.Fatalf("Ports() = %v", m.Ports())
	}
}
