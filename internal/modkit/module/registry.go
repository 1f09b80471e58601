package module

import "sync"

// process-global port registry used to cross-wire modules during bootstrap.
// Single-process composition only; keyed by module name
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a module's port bundle under its name
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches a registered bundle and asserts it to T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset clears the registry between tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
