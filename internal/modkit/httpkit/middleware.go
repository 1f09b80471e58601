package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"asolens/internal/platform/net/middleware"
)

// CommonStack is the baseline middleware every API module mounts.
// Order matters: correlation first, then recovery, then the rest
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),

		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
