package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/javohir-a/kutubxona/internal/config"
	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "invalid level falls back to info", logLevel: "trace"},
		{name: "case insensitive", logLevel: "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	base := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := logger.WithContext(context.Background(), base)
	assert.Same(t, base, logger.FromContext(ctx))

	// Without a stored logger the process default is returned.
	assert.NotNil(t, logger.FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := logger.WithContext(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
}
