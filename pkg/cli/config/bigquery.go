package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra/bq"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

type BigQuery struct {
	projectID   types.GoogleProjectID
	datasetID   types.BQDatasetID
	tableID     types.BQTableID
	credentials string
}

func (x *BigQuery) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bigquery-project-id",
			Usage:       "BigQuery project ID to export reports",
			Category:    "BigQuery",
			Destination: (*string)(&x.projectID),
			Sources:     cli.EnvVars("ECOCODER_BIGQUERY_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-dataset-id",
			Usage:       "BigQuery dataset ID",
			Category:    "BigQuery",
			Destination: (*string)(&x.datasetID),
			Sources:     cli.EnvVars("ECOCODER_BIGQUERY_DATASET_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-table-id",
			Usage:       "BigQuery table ID",
			Category:    "BigQuery",
			Value:       "reports",
			Destination: (*string)(&x.tableID),
			Sources:     cli.EnvVars("ECOCODER_BIGQUERY_TABLE_ID"),
		},
		&cli.StringFlag{
			Name:        "bigquery-credentials",
			Usage:       "Path to service account JSON file. Application default credentials are used if not set",
			Category:    "BigQuery",
			Destination: &x.credentials,
			Sources:     cli.EnvVars("ECOCODER_BIGQUERY_CREDENTIALS"),
		},
	}
}

func (x *BigQuery) Enabled() bool {
	return x.projectID != ""
}

// NewClient returns nil without error if BigQuery is not configured.
func (x *BigQuery) NewClient(ctx context.Context) (interfaces.BigQuery, error) {
	if !x.Enabled() {
		return nil, nil
	}
	if x.datasetID == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bigquery-dataset-id is required with bigquery-project-id")
	}

	var clientOptions []option.ClientOption
	if x.credentials != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(x.credentials))
	}

	client, err := bq.New(ctx, x.projectID, x.datasetID, x.tableID, clientOptions)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (x *BigQuery) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("ProjectID", x.projectID),
		slog.Any("DatasetID", x.datasetID),
		slog.Any("TableID", x.tableID),
		slog.Bool("Credentials", x.credentials != ""),
	)
}
