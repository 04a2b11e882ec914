package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"saylani-fulfillment/internal/log"
)

// RateLimit caps webhook calls across all callers over a sliding window.
// Every call arrives from the platform's few egress addresses, so the limit
// is shared rather than per IP. Shed calls still get the 200 apology: the
// platform treats any other status as a failed webhook.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(func(*http.Request) (string, error) { return "webhook", nil }),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger := log.WithComponent("http")
			logger.Warn().Str("path", r.URL.Path).Int("limit", requests).Msg("webhook rate limit reached")
			writeApology(w)
		}),
	)
}

// RequestLogger logs one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger := log.WithComponent("http")
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// RecoverWithApology turns a handler panic into the platform-friendly 200
// apology so the user never sees a generic webhook error.
func RecoverWithApology(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger := log.WithComponent("http")
				logger.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("handler panicked")
				writeApology(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
