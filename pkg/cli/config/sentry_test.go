package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/cli/config"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

func TestSentry(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		var cfg config.Sentry
		names := flagNames(cfg.Flags())
		gt.True(t, names["sentry-dsn"])
		gt.True(t, names["sentry-env"])
		gt.True(t, names["sentry-sample-rate"])
	})

	t.Run("disabled without DSN", func(t *testing.T) {
		var cfg config.Sentry
		parse(t, cfg.Flags())
		gt.False(t, cfg.Enabled())
		gt.NoError(t, cfg.Configure(context.Background()))
		cfg.Flush()
	})

	t.Run("sample rate out of range", func(t *testing.T) {
		var cfg config.Sentry
		parse(t, cfg.Flags(), "--sentry-dsn", "https://key@o0.ingest.example.com/1", "--sentry-sample-rate", "1.5")
		err := cfg.Configure(context.Background())
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}
