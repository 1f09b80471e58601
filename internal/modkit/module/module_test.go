package module

import (
	"testing"

	"asolens/internal/modkit/httpkit"
)

// fakeModule is the shared module double for this package's tests
type fakeModule struct {
	name    string
	ports   any
	mounted bool
}

func (m *fakeModule) Name() string               { return m.name }
func (m *fakeModule) Ports() PortSet             { return m.ports }
func (m *fakeModule) MountRoutes(httpkit.Router) { m.mounted = true }

var _ Module = (*fakeModule)(nil)

func TestMountRoutes_Observable(t *testing.T) {
	t.Parallel()

	m := &fakeModule{name: "audits"}
	m.MountRoutes(nil)
	if !m.mounted {
		t.Fatal("MountRoutes did not run")
	}
}

func TestPorts_RoundTrips(t *testing.T) {
	t.Parallel()

	type auditPorts struct {
		Runner string
		Reader string
	}

	cases := map[string]any{
		"nil bundle":    nil,
		"plain value":   123,
		"struct bundle": auditPorts{Runner: "r", Reader: "g"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			m := &fakeModule{name: "audits", ports: in}
			if got := m.Ports(); got != in {
				t.Fatalf("Ports() = %v, want %v", got, in)
			}
		})
	}
}
