package usecase

import (
	"bytes"
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/report"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// ExportReport sends the report to configured sinks. It does nothing when no sink is configured.
func (x *UseCase) ExportReport(ctx context.Context, r *model.AnalysisReport) error {
	if r == nil {
		return goerr.New("report is nil")
	}

	if bq := x.clients.BigQuery(); bq != nil {
		record := r.ToRecord()
		schema, err := ensureReportTable(ctx, bq, record)
		if err != nil {
			return err
		}
		if err := bq.Insert(ctx, schema, record); err != nil {
			return goerr.Wrap(err, "failed to insert report to BigQuery", goerr.V("report_id", r.ID))
		}
		logging.From(ctx).Info("report inserted to BigQuery", "report_id", r.ID)
	}

	if storage := x.clients.Storage(); storage != nil {
		var buf bytes.Buffer
		if err := report.Render(&buf, r, x.storageFormat); err != nil {
			return err
		}

		object := x.objectName(r)
		if err := storage.Put(ctx, object, x.storageFormat.ContentType(), &buf); err != nil {
			return goerr.Wrap(err, "failed to upload report", goerr.V("object", object))
		}
		logging.From(ctx).Info("report uploaded", "report_id", r.ID, "object", object)
	}

	return nil
}

func (x *UseCase) objectName(r *model.AnalysisReport) string {
	return fmt.Sprintf("%s%s/%s/%s.%s", x.storagePrefix, r.Repository.Owner, r.Repository.Name, r.ID, x.storageFormat.Ext())
}

// reportTableDescription is set on report tables created by ExportReport.
const reportTableDescription = "ecocoder analysis reports, one row per analyzed snapshot"

// ensureReportTable prepares the report table for record and returns the schema to insert with.
// A missing table is created. New report columns are added to an existing table, and existing
// columns are kept even when the report no longer carries them.
func ensureReportTable(ctx context.Context, bq interfaces.BigQuery, record *model.ReportRecord) (bigquery.Schema, error) {
	want, err := bqs.Infer(record)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer report schema")
	}

	table, err := bq.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read report table")
	}

	switch {
	case table == nil:
		if err := bq.CreateTable(ctx, &bigquery.TableMetadata{
			Description: reportTableDescription,
			Schema:      want,
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create report table")
		}
		logging.From(ctx).Info("report table created", "columns", len(want))
		return want, nil

	case bqs.Equal(table.Schema, want):
		return want, nil
	}

	extended, err := bqs.Merge(table.Schema, want)
	if err != nil {
		return nil, goerr.Wrap(err, "report columns conflict with the existing table",
			goerr.V("catalog_version", record.CatalogVersion))
	}
	if err := bq.UpdateTable(ctx, bigquery.TableMetadataToUpdate{Schema: extended}, table.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to add report columns", goerr.V("etag", table.ETag))
	}
	logging.From(ctx).Info("report table extended", "columns", len(extended))

	return extended, nil
}
