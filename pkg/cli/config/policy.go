package config

import (
	"log/slog"

	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/infra/policy"
	"github.com/urfave/cli/v3"
)

type Policy struct {
	paths []string
}

func (x *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "policy",
			Usage:       "Rego policy file or directory evaluated against the report (data.ecocoder)",
			Category:    "Policy",
			Destination: &x.paths,
			Sources:     cli.EnvVars("ECOCODER_POLICY"),
		},
	}
}

// NewClient returns nil without error if no policy is given.
func (x *Policy) NewClient() (interfaces.Policy, error) {
	if len(x.paths) == 0 {
		return nil, nil
	}
	client, err := policy.New(x.paths...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *Policy) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Paths", x.paths),
	)
}
