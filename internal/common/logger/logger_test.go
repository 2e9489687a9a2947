package logger

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/account-hub/internal/common/constants"
)

func TestLogger_SkipsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "api", "warn")

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARNING] [api]")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_WithFieldsSortedAndTraced(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "api", "debug")
	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "trace-1")

	log.WithFields(ctx, Fields{"user_id": 2, "action": "login"}).Info("user logged in")

	assert.Contains(t, buf.String(), "[trace_id=trace-1 action=login user_id=2]")
}

func TestLogger_ShouldLog(t *testing.T) {
	log := NewWriter(&bytes.Buffer{}, "", "error")

	assert.False(t, log.ShouldLog(DEBUG))
	assert.True(t, log.ShouldLog(CRITICAL))

	log.SetLevel("debug")
	assert.True(t, log.ShouldLog(DEBUG))
}

func TestNew_CreatesLogDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := New(dir, "api", "info")
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	log.Info("started")
	assert.FileExists(t, filepath.Join(dir, "app.log"))
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	assert.Equal(t, INFO, parseLevel("nonsense"))
	assert.Equal(t, WARNING, parseLevel(" warning "))
}

func TestLogger_ReportsCallerFile(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "", "info")

	log.Infof("n=%d", 1)
	log.WithFields(context.Background(), nil).Info("plain")

	assert.Contains(t, buf.String(), "[INFO] logger_test.go:")
	assert.NotContains(t, buf.String(), "logger.go:")
}
