package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
	commonerrors "github.com/AlibekovAA/account-hub/internal/common/errors"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
)

func newTestLogger() *logger.Logger {
	return logger.NewWriter(&bytes.Buffer{}, "http-test", "debug")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestErrorHandler_NotFound(t *testing.T) {
	h := NewErrorHandler(newTestLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/users/9", nil)
	req = req.WithContext(context.WithValue(req.Context(), constants.TraceIDKey, "trace-1"))
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, commonerrors.NewNotFound("Users", int64(9)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "RESOURCE_NOT_FOUND", env.Code)
	assert.Equal(t, "Users not found: 9", env.Message)
	assert.Equal(t, "trace-1", env.TraceID)
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	h := NewErrorHandler(newTestLogger())
	rec := httptest.NewRecorder()

	err := commonerrors.ErrEmailAlreadyInUse.WithCause(errors.New("duplicate key"))
	h.HandleError(rec, httptest.NewRequest(http.MethodPost, "/api/users", nil), err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_ALREADY_IN_USE", decodeEnvelope(t, rec).Code)
}

func TestErrorHandler_UnknownErrorIs500(t *testing.T) {
	h := NewErrorHandler(newTestLogger())
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/api/posts/1", nil), errors.New("db gone"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, CodeInternal, env.Code)
	assert.NotContains(t, env.Message, "db gone")
}

type payload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=3"`
}

func TestReadJSON(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var p payload
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","name":"abc"}`))

		assert.True(t, ReadJSON(rec, req, &p))
		assert.Equal(t, "a@b.co", p.Email)
	})

	t.Run("malformed", func(t *testing.T) {
		var p payload
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))

		assert.False(t, ReadJSON(rec, req, &p))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, CodeInvalidJSON, decodeEnvelope(t, rec).Code)
	})

	t.Run("invalid fields", func(t *testing.T) {
		var p payload
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","name":"abcd"}`))

		assert.False(t, ReadJSON(rec, req, &p))
		env := decodeEnvelope(t, rec)
		assert.Equal(t, CodeValidationFailed, env.Code)
		assert.Equal(t, "email", env.Details["email"])
		assert.Equal(t, "max=3", env.Details["name"])
	})
}

func TestRequireEmailHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	_, ok := RequireEmailHeader(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	assert.False(t, ok)
	assert.Equal(t, CodeMissingEmailHeader, decodeEnvelope(t, rec).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(constants.EmailHeader, "a@b.co")
	email, ok := RequireEmailHeader(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "a@b.co", email)
}

func TestRequireID(t *testing.T) {
	mux := http.NewServeMux()
	var got int64
	mux.HandleFunc("GET /things/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := RequireID(w, r, "id")
		if !ok {
			return
		}
		got = id
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(42), got)

	for _, bad := range []string{"/things/abc", "/things/0", "/things/-1"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, bad, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
		assert.Equal(t, CodeInvalidPath, decodeEnvelope(t, rec).Code, bad)
	}
}

func TestRouteRateLimiter_SignupBudget(t *testing.T) {
	rrl := NewRouteRateLimiter()
	defer rrl.Stop()
	h := rrl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	statuses := make([]int, 0, constants.RateLimitSignupBurst+1)
	for i := 0; i < constants.RateLimitSignupBurst+1; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, http.StatusTooManyRequests, statuses[len(statuses)-1])

	other := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
	other.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBuildBaseHandler_SetsTraceAndRecoversPanics(t *testing.T) {
	h := BuildBaseHandler(newTestLogger(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	traceID := rec.Header().Get("X-Trace-ID")
	assert.NotEmpty(t, traceID)
	assert.Equal(t, traceID, decodeEnvelope(t, rec).TraceID)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestTraceIDMiddleware_KeepsIncomingID(t *testing.T) {
	var seen string
	h := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc", seen)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadinessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	ReadinessHandler(newTestLogger(), pingerFunc(func(context.Context) error { return nil })).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	ReadinessHandler(newTestLogger(), pingerFunc(func(context.Context) error { return errors.New("down") })).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMaxRequestSizeMiddleware_RejectsLargeBody(t *testing.T) {
	h := MaxRequestSizeMiddleware(4)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
