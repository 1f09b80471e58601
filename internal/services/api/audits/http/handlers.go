// Package http provides HTTP transport for the audits API
package http

import (
	stdhttp "net/http"

	"asolens/internal/modkit/httpkit"
	apidom "asolens/internal/services/api/audits/domain"
	auditdom "asolens/internal/services/audits/domain"
)

// Deps are the ports the handlers call into
type Deps struct {
	Runner auditdom.RunnerPort
	Reader auditdom.ReaderPort
}

// Register mounts audit endpoints on the given router.
// POST with JSON bodies throughout for composable query shapes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON[apidom.RunInput](r, "/run", h.run)
	httpkit.PostJSON[apidom.GetInput](r, "/get", h.get)
	httpkit.PostJSON[apidom.RecentInput](r, "/recent", h.recent)
}

type handlers struct{ deps Deps }

func (h *handlers) run(r *stdhttp.Request, in apidom.RunInput) (any, error) {
	return h.deps.Runner.Run(r.Context(), toRunInput(in))
}

func (h *handlers) get(r *stdhttp.Request, in apidom.GetInput) (any, error) {
	return h.deps.Reader.Get(r.Context(), in.AuditID)
}

func (h *handlers) recent(r *stdhttp.Request, in apidom.RecentInput) (any, error) {
	return h.deps.Reader.Recent(r.Context(), in.AppID, in.Limit)
}

func toRunInput(in apidom.RunInput) auditdom.RunInput {
	out := auditdom.RunInput{
		App:      toAppInput(in.App),
		Country:  in.Country,
		Platform: in.Platform,
		DryRun:   in.DryRun,
	}
	for _, c := range in.Competitors {
		out.Competitors = append(out.Competitors, toAppInput(c))
	}
	return out
}

func toAppInput(in apidom.AppBody) auditdom.AppInput {
	out := auditdom.AppInput{AppID: in.AppID, Name: in.Name}
	if in.Fields != nil {
		out.Fields = &auditdom.AppFields{
			Title:    in.Fields.Title,
			Subtitle: in.Fields.Subtitle,
			Keywords: in.Fields.Keywords,
			Promo:    in.Fields.Promo,
		}
	}
	return out
}
