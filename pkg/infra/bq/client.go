package bq

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/bigquery/storage/managedwriter"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"github.com/secmon-lab/ecocoder/pkg/utils/safe"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Client struct {
	bqClient *bigquery.Client
	mwClient *managedwriter.Client
	project  types.GoogleProjectID
	dataset  types.BQDatasetID
	table    types.BQTableID

	schemaRetry      int
	schemaRetryDelay time.Duration
}

var _ interfaces.BigQuery = (*Client)(nil)

type Option func(*Client)

// WithSchemaRetry sets how many times Insert retries while an updated table schema is not yet visible to the storage write API.
func WithSchemaRetry(attempts int, delay time.Duration) Option {
	return func(x *Client) {
		x.schemaRetry = attempts
		x.schemaRetryDelay = delay
	}
}

func New(ctx context.Context, projectID types.GoogleProjectID, datasetID types.BQDatasetID, tableID types.BQTableID, clientOptions []option.ClientOption, options ...Option) (*Client, error) {
	mwClient, err := managedwriter.NewClient(ctx, projectID.String(), clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery storage write client", goerr.V("projectID", projectID))
	}

	bqClient, err := bigquery.NewClient(ctx, projectID.String(), clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client", goerr.V("projectID", projectID))
	}

	x := &Client{
		bqClient:         bqClient,
		mwClient:         mwClient,
		project:          projectID,
		dataset:          datasetID,
		table:            tableID,
		schemaRetry:      5,
		schemaRetryDelay: 3 * time.Second,
	}
	for _, opt := range options {
		opt(x)
	}

	return x, nil
}

func (x *Client) tableRef() *bigquery.Table {
	return x.bqClient.Dataset(x.dataset.String()).Table(x.table.String())
}

func (x *Client) CreateTable(ctx context.Context, md *bigquery.TableMetadata) error {
	if err := x.tableRef().Create(ctx, md); err != nil {
		return goerr.Wrap(err, "failed to create table", goerr.V("dataset", x.dataset), goerr.V("table", x.table))
	}
	return nil
}

// GetMetadata returns nil without error if the table does not exist.
func (x *Client) GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error) {
	md, err := x.tableRef().Metadata(ctx)
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == 404 {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get table metadata", goerr.V("dataset", x.dataset), goerr.V("table", x.table))
	}

	return md, nil
}

func (x *Client) UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.tableRef().Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(err, "failed to update table", goerr.V("dataset", x.dataset), goerr.V("table", x.table))
	}
	return nil
}

// Insert appends one row through the storage write API. data is encoded with JSON then converted to a proto message of schema.
func (x *Client) Insert(ctx context.Context, schema bigquery.Schema, data any) error {
	descriptor, row, err := encodeRow(schema, data)
	if err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err := x.appendRows(ctx, descriptor, [][]byte{row})
		if err == nil {
			return nil
		}
		if !IsSchemaNotFoundError(err) || attempt >= x.schemaRetry {
			return err
		}

		logging.From(ctx).Info("table schema is not yet updated, retrying insert",
			slog.Int("attempt", attempt),
			slog.Any("table", x.table),
		)
		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "canceled while waiting for schema update")
		case <-time.After(x.schemaRetryDelay):
		}
	}
}

func (x *Client) appendRows(ctx context.Context, descriptor *rowDescriptor, rows [][]byte) error {
	ms, err := x.mwClient.NewManagedStream(ctx,
		managedwriter.WithDestinationTable(
			managedwriter.TableParentFromParts(x.project.String(), x.dataset.String(), x.table.String()),
		),
		managedwriter.WithSchemaDescriptor(descriptor.proto),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create managed stream")
	}
	defer safe.Close(ms)

	result, err := ms.AppendRows(ctx, rows)
	if err != nil {
		return goerr.Wrap(err, "failed to append rows")
	}
	if _, err := result.FullResponse(ctx); err != nil {
		return goerr.Wrap(err, "failed to get append result")
	}

	return nil
}

// IsSchemaNotFoundError reports whether err means the write stream does not know the newly added columns yet.
func IsSchemaNotFoundError(err error) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := status.FromError(e); ok && st.Code() == codes.InvalidArgument {
			if strings.Contains(st.Message(), "Input schema has more fields than BigQuery schema") {
				return true
			}
		}
	}
	return false
}
