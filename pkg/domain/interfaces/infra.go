package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . GitHub BigQuery Storage Policy

import (
	"context"
	"io"
	"net/url"

	"cloud.google.com/go/bigquery"

	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// GitHub is a read-only view of GitHub REST API used to fetch repository contents.
type GitHub interface {
	GetRepository(ctx context.Context, owner, name string) (*model.GitHubRepository, error)
	ResolveCommit(ctx context.Context, repo model.RepositoryRef) (types.CommitSHA, error)
	// ListTree returns all entries of the tree recursively. Truncated trees are completed by walking sub trees.
	ListTree(ctx context.Context, repo model.RepositoryRef, sha types.CommitSHA) ([]*model.TreeEntry, error)
	GetBlob(ctx context.Context, repo model.RepositoryRef, sha string) ([]byte, error)
	GetArchiveURL(ctx context.Context, repo model.RepositoryRef) (*url.URL, error)
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, data any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// Storage uploads objects into a pre-configured bucket.
type Storage interface {
	Put(ctx context.Context, object string, contentType string, r io.Reader) error
}

type Policy interface {
	Query(ctx context.Context, input any, output any) error
}
