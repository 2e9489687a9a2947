package http

import (
	"net/http"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	"github.com/AlibekovAA/account-hub/internal/common/httpmetrics"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
)

// BuildBaseHandler wraps handler with the middleware chain shared by every
// route. limiter may be nil.
func BuildBaseHandler(log *logger.Logger, handler http.Handler, limiter *RouteRateLimiter) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	csp := ContentSecurityPolicyMiddleware("")

	inner := metrics.Wrap(handler)
	if limiter != nil {
		inner = limiter.Middleware(inner)
	}

	return securityHeaders(csp(traceID(recovery(maxRequestSize(inner)))))
}
