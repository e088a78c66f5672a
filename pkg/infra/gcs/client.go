package gcs

import (
	"context"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"google.golang.org/api/option"
)

type Client struct {
	client *storage.Client
	bucket types.GCSBucket
}

var _ interfaces.Storage = (*Client)(nil)

func New(ctx context.Context, bucket types.GCSBucket, options ...option.ClientOption) (*Client, error) {
	if bucket == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "bucket is empty")
	}

	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("bucket", bucket))
	}

	return &Client{client: client, bucket: bucket}, nil
}

// Put uploads r to the object. The object is replaced if it already exists.
func (x *Client) Put(ctx context.Context, object string, contentType string, r io.Reader) error {
	w := x.client.Bucket(x.bucket.String()).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("bucket", x.bucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to close object writer", goerr.V("bucket", x.bucket), goerr.V("object", object))
	}

	logging.From(ctx).Info("uploaded report",
		slog.String("bucket", x.bucket.String()),
		slog.String("object", object),
		slog.Int64("size", n),
	)
	return nil
}
