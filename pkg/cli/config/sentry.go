package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/scanner"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry receives unexpected errors. Errors caused by user input are not sent.
type Sentry struct {
	dsn         string
	environment string
	sampleRate  float64
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN",
			Category:    "Sentry",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("ECOCODER_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Destination: &x.environment,
			Sources:     cli.EnvVars("ECOCODER_SENTRY_ENV"),
		},
		&cli.FloatFlag{
			Name:        "sentry-sample-rate",
			Usage:       "Ratio of error events sent to Sentry (0.0 to 1.0)",
			Category:    "Sentry",
			Value:       1.0,
			Destination: &x.sampleRate,
			Sources:     cli.EnvVars("ECOCODER_SENTRY_SAMPLE_RATE"),
		},
	}
}

func (x *Sentry) Enabled() bool {
	return x.dsn != ""
}

func (x *Sentry) Configure(ctx context.Context) error {
	if !x.Enabled() {
		logging.From(ctx).Debug("sentry is not configured")
		return nil
	}
	if x.sampleRate < 0 || x.sampleRate > 1 {
		return goerr.Wrap(types.ErrInvalidOption, "sentry-sample-rate must be between 0 and 1",
			goerr.V("rate", x.sampleRate))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.environment,
		Release:     "ecocoder@" + scanner.CatalogVersion,
		SampleRate:  x.sampleRate,
	}); err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "failed to initialize sentry", goerr.V("cause", err.Error()))
	}

	return nil
}

// Flush waits for buffered events to be sent before the process exits.
func (x *Sentry) Flush() {
	if x.Enabled() {
		sentry.Flush(2 * time.Second)
	}
}

func (x *Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("DSN.len", len(x.dsn)),
		slog.String("Environment", x.environment),
		slog.Float64("SampleRate", x.sampleRate),
	)
}
