package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/account-hub/internal/common/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debugf("health check request")
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ReadinessHandler reports ready only while the database answers a ping.
func ReadinessHandler(log *logger.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.WithFields(ctx, logger.Fields{"action": "readiness"}).Warnf("database ping failed: %v", err)
			WriteErrorEnvelope(w, http.StatusServiceUnavailable, CodeNotReady, "database unavailable", nil, TraceIDFromContext(r.Context()))
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
