package module

import "reflect"

// PortSet marks the opaque bundle a module exposes through Ports().
// Modules define concrete structs or interfaces and return them as-is
type PortSet = any

// PortsOf extracts an interface T from a module's Ports() bundle.
// It tries the bundle itself first, then each exported struct field.
// ok=false when nothing in the bundle implements T
func PortsOf[T any](m Module) (t T, ok bool) {
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, hit := p.(T); hit {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Struct {
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Field(i)
			if !f.CanInterface() {
				continue
			}
			if v, hit := f.Interface().(T); hit {
				return v, true
			}
		}
	}
	return t, false
}

// MustPortsOf panics when the port is absent, naming the module
func MustPortsOf[T any](m Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: requested port not found on module " + m.Name())
}
