package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
	"github.com/AlibekovAA/account-hub/internal/common/httpmetrics"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError writes err as an error envelope. Domain errors keep their own
// status and code; anything else is logged and answered with 500.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr)
		return
	}

	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	h.log.WithFields(ctx, logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
		"path":   r.URL.Path,
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, http.StatusInternalServerError, CodeInternal, "internal server error", nil, traceID)
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, domainErr commonerrors.DomainError) {
	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)
	status := domainErr.HTTPStatus()

	logFields := logger.Fields{
		"error_code": domainErr.Code(),
		"category":   string(domainErr.Category()),
		"status":     status,
		"action":     "domain_error",
	}

	if status >= http.StatusInternalServerError {
		h.log.WithFields(ctx, logFields).Errorf("domain error: %s", domainErr.Error())
	} else if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, logFields).Debugf("domain error: %s", domainErr.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, status, domainErr.Code(), domainErr.Message(), nil, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(constants.TraceIDKey).(string)
	return traceID
}
