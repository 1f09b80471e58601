package modkit

import (
	phttp "asolens/internal/platform/net/http"
)

// Module is the minimal contract every service module fulfils.
// Kept tiny on purpose so modules stay decoupled from each other
type Module interface {
	// MountRoutes registers HTTP routes on the router seam.
	// Worker-style modules without a transport leave this a no-op
	MountRoutes(r phttp.Router)

	// Ports exposes the module's port bundle for cross wiring
	Ports() any

	// Name identifies the module in the registry
	Name() string
}

// Builder constructs a Module from shared deps plus options.
// Modules expose New(deps Deps, opts ...Option) Module in this shape
type Builder func(Deps, ...Option) Module
