// Package api provides the HTTP API for the application
package api

import (
	"asolens/internal/platform/config"
	"asolens/internal/platform/logger"
	phttp "asolens/internal/platform/net/http"
	"asolens/internal/platform/store"

	"asolens/internal/modkit"
	"asolens/internal/modkit/httpkit"
	"asolens/internal/modkit/module"

	"asolens/internal/adapters/catalog/itunes"
	apiaudits "asolens/internal/services/api/audits/module"
	metamod "asolens/internal/services/api/meta/module"
	auditdom "asolens/internal/services/audits/domain"
	auditsmod "asolens/internal/services/audits/module"
	signalsvc "asolens/internal/services/signals/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// catalog adapter from SERVICE_ITUNES_* config
	itc := opt.Config.Prefix("SERVICE_ITUNES_")
	catalog := itunes.NewClient(itunes.Options{
		BaseURL:    itc.MayString("BASE_URL", ""),
		Timeout:    itc.MayDuration("TIMEOUT", 0),
		MaxRetries: itc.MayInt("MAX_RETRIES", 0),
		RatePerMin: itc.MayInt("RATE_PER_MIN", 0),
	})

	// Construct the WORKER audits module first and extract its ports
	worker := auditsmod.New(deps, auditsmod.Options{}, modkit.WithPorts(auditdom.Ports{
		Catalog: catalog,
		Signals: signalsvc.NewStatic(nil),
	}))
	ports := module.MustPortsOf[auditsmod.Ports](worker)

	// Inject the worker's ports into the API audits module
	auditsAPI := apiaudits.New(
		deps,
		modkit.WithPorts(apiaudits.Ports{
			Runner: ports.Runner,
			Reader: ports.Reader,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		worker, // include worker so its ports are registered
		auditsAPI,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
