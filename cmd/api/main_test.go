package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_InvalidTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-for-jwt")
	t.Setenv("APP_TIMEZONE", "Nowhere/Invalid")

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_TIMEZONE")
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
