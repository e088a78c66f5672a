package config

import (
	"log/slog"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Fetch controls how repository files are collected.
type Fetch struct {
	ref         string
	mode        string
	concurrency int64
	maxFileSize int64
	exts        []string
}

// Flags returns flags for fetching files from GitHub.
func (x *Fetch) Flags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:        "ref",
			Usage:       "Branch, tag or commit to analyze (default branch if not set)",
			Category:    "Fetch",
			Destination: &x.ref,
			Sources:     cli.EnvVars("ECOCODER_REF"),
		},
		&cli.StringFlag{
			Name:        "fetch-mode",
			Usage:       "How to download files [tree|archive]",
			Category:    "Fetch",
			Value:       string(types.FetchModeTree),
			Destination: &x.mode,
			Sources:     cli.EnvVars("ECOCODER_FETCH_MODE"),
		},
		&cli.Int64Flag{
			Name:        "concurrency",
			Usage:       "Number of parallel file downloads in tree mode",
			Category:    "Fetch",
			Value:       4,
			Destination: &x.concurrency,
			Sources:     cli.EnvVars("ECOCODER_CONCURRENCY"),
		},
	}, x.FilterFlags()...)
}

// FilterFlags returns flags of file selection shared with local directory scan.
func (x *Fetch) FilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "max-file-size",
			Usage:       "Skip files larger than the size in bytes",
			Category:    "Fetch",
			Value:       1 << 20,
			Destination: &x.maxFileSize,
			Sources:     cli.EnvVars("ECOCODER_MAX_FILE_SIZE"),
		},
		&cli.StringSliceFlag{
			Name:        "ext",
			Usage:       "Analyze only files with the extension (repeatable, manifests are always analyzed)",
			Category:    "Fetch",
			Destination: &x.exts,
			Sources:     cli.EnvVars("ECOCODER_EXT"),
		},
	}
}

func (x *Fetch) Ref() string {
	return x.ref
}

func (x *Fetch) Options() (model.FetchOptions, error) {
	mode, err := types.ParseFetchMode(x.mode)
	if err != nil {
		return model.FetchOptions{}, err
	}

	return model.FetchOptions{
		Mode:        mode,
		Extensions:  x.exts,
		MaxFileSize: x.maxFileSize,
		Concurrency: int(x.concurrency),
	}, nil
}

func (x *Fetch) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Ref", x.ref),
		slog.String("Mode", x.mode),
		slog.Int64("Concurrency", x.concurrency),
		slog.Int64("MaxFileSize", x.maxFileSize),
		slog.Any("Extensions", x.exts),
	)
}
