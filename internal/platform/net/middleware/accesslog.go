// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"asolens/internal/platform/logger"
	pnet "asolens/internal/platform/net"
)

// AccessLogOptions configures the structured access log
type AccessLogOptions struct {
	// Slow logs requests taking >= Slow at warn level, 0 disables the check
	Slow time.Duration
}

// captureWriter records the status code and body size as they are written
type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	if n > 0 {
		cw.bytes += n
	}
	return n, err
}

// AccessLog emits one zerolog line per request: method, path, status,
// elapsed time and bytes written. The correlation id minted upstream is
// copied onto the logger context so handlers logging through logger.C
// carry the same request_id as the access line
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := pnet.RequestID(ctx); id != "" {
				ctx = logger.WithRequest(ctx, id)
				r = r.WithContext(ctx)
			}

			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			elapsed := time.Since(start)
			log := logger.C(ctx)
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", cw.bytes).
				Msg("request done")
		})
	}
}
