package http

import (
	"net/http"
	"runtime/debug"

	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					metrics.PanicsRecoveredTotal.Inc()
					log.WithFields(r.Context(), logger.Fields{"action": "panic", "path": r.URL.Path}).
						Criticalf("panic recovered: %v\n%s", err, debug.Stack())
					WriteErrorEnvelope(w, http.StatusInternalServerError, CodeInternal, "internal server error", nil, TraceIDFromContext(r.Context()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
