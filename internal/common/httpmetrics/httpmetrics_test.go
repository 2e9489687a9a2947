package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":                     "/",
		"/api/users/42":        "/api/users/{param}",
		"/api/users/42/verify": "/api/users/{param}/verify",
		"/api/users/me":        "/api/users/me",
		"/api/posts/7":         "/api/posts/{param}",

		"/x/0b6c9f0e-6f5a-4a3e-9d1c-2b9f9f1d2e3a": "/x/{param}",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestCollector_PassesThroughStatus(t *testing.T) {
	h := New().Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
