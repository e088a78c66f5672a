package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/cli/config"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/errutil"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"github.com/secmon-lab/ecocoder/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Configure

type CLI struct {
	stdout io.Writer
}

type Option func(*CLI)

// WithStdout replaces destination of reports printed without --out-file.
func WithStdout(w io.Writer) Option {
	return func(x *CLI) {
		x.stdout = w
	}
}

func New(options ...Option) *CLI {
	x := &CLI{
		stdout: os.Stdout,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *CLI) Run(argv []string) error {
	var (
		logLevel  string
		logFormat string
		logOutput string

		sentry config.Sentry
		env    analyzeEnv

		logCloser io.Closer
	)

	app := &cli.Command{
		Name:      "ecocoder",
		Usage:     "Find energy inefficient code in GitHub repositories",
		ArgsUsage: "<repository-url>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [debug|info|warn|error]",
				Aliases:     []string{"l"},
				Sources:     cli.EnvVars("ECOCODER_LOG_LEVEL"),
				Destination: &logLevel,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Aliases:     []string{"f"},
				Sources:     cli.EnvVars("ECOCODER_LOG_FORMAT"),
				Destination: &logFormat,
				Value:       "text",
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [stderr|stdout|<file>]",
				Sources:     cli.EnvVars("ECOCODER_LOG_OUTPUT"),
				Destination: &logOutput,
				Value:       "stderr",
			},
		}, append(sentry.Flags(), env.Flags()...)...),
		Commands: []*cli.Command{
			scanCommand(x.stdout),
			rulesCommand(x.stdout),
			serveCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closer, err := ConfigureLogging(logFormat, logLevel, logOutput)
			if err != nil {
				return ctx, goerr.Wrap(err, "failed to configure logging")
			}
			logCloser = closer
			if err := sentry.Configure(ctx); err != nil {
				return ctx, err
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runAnalyze(ctx, c, &env, x.stdout)
		},
		OnUsageError: func(ctx context.Context, c *cli.Command, err error, isSubcommand bool) error {
			return goerr.Wrap(types.ErrInvalidOption, "invalid command line", goerr.V("cause", err.Error()))
		},
	}

	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	defer sentry.Flush()
	defer func() { safe.Close(logCloser) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, argv); err != nil {
		errutil.HandleError(ctx, "fatal error", err)
		return err
	}

	return nil
}

// loadDotEnv sets variables in the file as environment variables. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(types.ErrInvalidOption, "failed to load env file", goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	return nil
}
