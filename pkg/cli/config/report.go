package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Report has options of the rendered report.
type Report struct {
	output  string
	detail  string
	outFile string
}

func (x *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Report format [text|json|html]",
			Category:    "Report",
			Value:       string(types.OutputText),
			Destination: &x.output,
			Sources:     cli.EnvVars("ECOCODER_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "detail",
			Aliases:     []string{"d"},
			Usage:       "Detail level [basic|detailed|comprehensive]",
			Category:    "Report",
			Value:       string(types.DetailBasic),
			Destination: &x.detail,
			Sources:     cli.EnvVars("ECOCODER_DETAIL"),
		},
		&cli.StringFlag{
			Name:        "out-file",
			Usage:       "Write report to the file instead of stdout",
			Category:    "Report",
			Destination: &x.outFile,
			Sources:     cli.EnvVars("ECOCODER_OUT_FILE"),
		},
	}
}

func (x *Report) Format() (types.OutputFormat, error) {
	return types.ParseOutputFormat(x.output)
}

func (x *Report) Detail() (types.DetailLevel, error) {
	return types.ParseDetailLevel(x.detail)
}

// ToStdout reports whether the report is printed rather than written to --out-file.
func (x *Report) ToStdout() bool {
	return x.outFile == ""
}

// Open returns the destination of the report. stdout is returned when out-file is not set.
func (x *Report) Open(stdout io.Writer) (io.WriteCloser, error) {
	if x.outFile == "" {
		return nopCloser{stdout}, nil
	}

	fd, err := os.Create(filepath.Clean(x.outFile))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to create report file",
			goerr.V("path", x.outFile), goerr.V("cause", err.Error()))
	}
	return fd, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func (x *Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Output", x.output),
		slog.String("Detail", x.detail),
		slog.String("OutFile", x.outFile),
	)
}
