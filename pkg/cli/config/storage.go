package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra/gcs"
	"github.com/urfave/cli/v3"
)

// Storage is Cloud Storage destination of rendered reports.
type Storage struct {
	bucket types.GCSBucket
	prefix string
	format string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Cloud Storage bucket to upload reports",
			Category:    "Cloud Storage",
			Destination: (*string)(&x.bucket),
			Sources:     cli.EnvVars("ECOCODER_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix of uploaded reports",
			Category:    "Cloud Storage",
			Destination: &x.prefix,
			Sources:     cli.EnvVars("ECOCODER_GCS_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "gcs-format",
			Usage:       "Format of uploaded reports [text|json|html]",
			Category:    "Cloud Storage",
			Value:       string(types.OutputJSON),
			Destination: &x.format,
			Sources:     cli.EnvVars("ECOCODER_GCS_FORMAT"),
		},
	}
}

func (x *Storage) Enabled() bool {
	return x.bucket != ""
}

func (x *Storage) Prefix() string {
	return x.prefix
}

func (x *Storage) Format() (types.OutputFormat, error) {
	return types.ParseOutputFormat(x.format)
}

// NewClient returns nil without error if the bucket is not configured.
func (x *Storage) NewClient(ctx context.Context) (interfaces.Storage, error) {
	if !x.Enabled() {
		return nil, nil
	}
	client, err := gcs.New(ctx, x.bucket)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Bucket", x.bucket),
		slog.String("Prefix", x.prefix),
		slog.String("Format", x.format),
	)
}
