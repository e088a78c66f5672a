package config

import (
	"log/slog"

	"github.com/secmon-lab/ecocoder/pkg/scanner"
	"github.com/urfave/cli/v3"
)

// Catalog configures the rule catalog of the scanner.
type Catalog struct {
	rulesPath           string
	disabled            []string
	dependencyThreshold int64
	largeFileThreshold  int64
}

func (x *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "Rule catalog file (.cue, .yaml or .json) merged into built-in rules",
			Category:    "Rules",
			Destination: &x.rulesPath,
			Sources:     cli.EnvVars("ECOCODER_RULES"),
		},
		&cli.StringSliceFlag{
			Name:        "disable-rule",
			Usage:       "Rule ID to disable (repeatable)",
			Category:    "Rules",
			Destination: &x.disabled,
			Sources:     cli.EnvVars("ECOCODER_DISABLE_RULE"),
		},
		&cli.Int64Flag{
			Name:        "dependency-threshold",
			Usage:       "Number of dependencies in a manifest to be reported",
			Category:    "Rules",
			Value:       scanner.DefaultDependencyThreshold,
			Destination: &x.dependencyThreshold,
			Sources:     cli.EnvVars("ECOCODER_DEPENDENCY_THRESHOLD"),
		},
		&cli.Int64Flag{
			Name:        "large-file-threshold",
			Usage:       "Source file size in bytes to be reported as very large",
			Category:    "Rules",
			Value:       scanner.DefaultLargeFileThreshold,
			Destination: &x.largeFileThreshold,
			Sources:     cli.EnvVars("ECOCODER_LARGE_FILE_THRESHOLD"),
		},
	}
}

// NewScanner builds a scanner with built-in rules merged with the catalog file.
func (x *Catalog) NewScanner() (*scanner.Scanner, error) {
	catalog, err := scanner.LoadCatalog(x.rulesPath)
	if err != nil {
		return nil, err
	}

	return scanner.New(
		scanner.WithCatalog(catalog),
		scanner.WithDisabledRules(x.disabled...),
		scanner.WithDependencyThreshold(int(x.dependencyThreshold)),
		scanner.WithLargeFileThreshold(x.largeFileThreshold),
	), nil
}

func (x *Catalog) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Rules", x.rulesPath),
		slog.Any("Disabled", x.disabled),
		slog.Int64("DependencyThreshold", x.dependencyThreshold),
		slog.Int64("LargeFileThreshold", x.largeFileThreshold),
	)
}
