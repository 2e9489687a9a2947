package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
)

type ErrorEnvelope struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	TraceID string         `json:"trace_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteErrorEnvelope(w, status, CodeUnknown, message, nil, "")
}

func WriteErrorEnvelope(w http.ResponseWriter, status int, code, message string, details map[string]any, traceID string) {
	env := ErrorEnvelope{Code: code, Message: message}
	if len(details) > 0 {
		env.Details = details
	}
	if traceID != "" {
		env.TraceID = traceID
	}
	WriteJSON(w, status, env)
}

func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// ReadJSON decodes and validates the request body into v. On failure it writes
// the error response and returns false.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	traceID := TraceIDFromContext(r.Context())

	if err := DecodeJSON(r, v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, "request body too large", nil, traceID)
			return false
		}
		WriteErrorEnvelope(w, http.StatusBadRequest, CodeInvalidJSON, "invalid json body", nil, traceID)
		return false
	}

	if details := ValidateStruct(v); details != nil {
		WriteErrorEnvelope(w, http.StatusBadRequest, CodeValidationFailed, "validation failed", details, traceID)
		return false
	}

	return true
}

// RequireEmailHeader extracts the caller's email from the EMAIL header.
func RequireEmailHeader(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := strings.TrimSpace(r.Header.Get(constants.EmailHeader))
	if email == "" {
		WriteErrorEnvelope(w, http.StatusBadRequest, CodeMissingEmailHeader, "EMAIL header is required", nil, TraceIDFromContext(r.Context()))
		return "", false
	}
	return email, true
}

func GetClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Real-IP")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
		if idx := strings.Index(ip, ","); idx != -1 {
			ip = strings.TrimSpace(ip[:idx])
		}
	}
	if ip == "" {
		ip = r.RemoteAddr
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			ip = ip[:idx]
		}
	}
	return ip
}

// WithTimeout bounds the request context. A non-positive timeout leaves it as is.
func WithTimeout(timeout time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if timeout <= 0 {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next(w, r.WithContext(ctx))
		}
	}
}
