package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/clog/hooks"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// Logs go to stderr by default because stdout carries the rendered report.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func init() {
	_, _ = Configure("text", "info", "stderr")
}

func Default() *slog.Logger {
	return defaultLogger
}

var levelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

type stdOutput struct{}

func (stdOutput) Close() error { return nil }

// logFile is the destination opened for a file log output.
type logFile struct {
	*os.File
}

// Close switches the default logger back to stderr and closes the file.
func (x *logFile) Close() error {
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	return x.File.Close()
}

// Configure replaces the default logger. logOutput is "stderr", "stdout" ("-") or a file path.
// The returned closer releases the log file and is a no-op for the standard streams.
func Configure(logFormat, logLevel, logOutput string) (io.Closer, error) {
	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithType[types.GitHubToken](masq.MaskWithSymbol('*', 16)),
		masq.WithType[types.GitHubWebhookSecret](masq.MaskWithSymbol('*', 16)),
		masq.WithType[types.GitHubAppPrivateKey](masq.MaskWithSymbol('*', 16)),
	)

	level, ok := levelMap[strings.ToLower(logLevel)]
	if !ok {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid log level", goerr.V("value", logLevel))
	}

	switch logFormat {
	case "text", "json":
	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid log format, should be 'json' or 'text'", goerr.V("value", logFormat))
	}

	var (
		w      io.Writer
		closer io.Closer = stdOutput{}
	)
	switch logOutput {
	case "stderr", "":
		w = os.Stderr
	case "stdout", "-":
		w = os.Stdout
	default:
		fd, err := os.Create(filepath.Clean(logOutput))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", logOutput))
		}
		w, closer = fd, &logFile{File: fd}
	}

	var handler slog.Handler
	switch logFormat {
	case "text":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithSource(level == slog.LevelDebug),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelDebug: color.New(color.FgGreen, color.Bold),
					slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
					slog.LevelError: color.New(color.FgRed, color.Bold),
				},
				LevelDefault: color.New(color.FgBlue, color.Bold),
				Time:         color.New(color.FgWhite),
				Message:      color.New(color.FgHiWhite),
				AttrKey:      color.New(color.FgHiCyan),
				AttrValue:    color.New(color.FgHiWhite),
			}),
			clog.WithAttrHook(hooks.GoErr()),
			clog.WithReplaceAttr(filter),
		)

	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})
	}

	defaultLogger = slog.New(handler)

	return closer, nil
}
