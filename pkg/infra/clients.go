package infra

import (
	"net/http"

	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
)

// Clients holds external service clients. Optional sinks are nil when not configured.
type Clients struct {
	github     interfaces.GitHub
	httpClient HTTPClient
	bqClient   interfaces.BigQuery
	storage    interfaces.Storage
	policy     interfaces.Policy
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) HTTPClient() HTTPClient {
	return x.httpClient
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) Storage() interfaces.Storage {
	return x.storage
}
func (x *Clients) Policy() interfaces.Policy {
	return x.policy
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithStorage(client interfaces.Storage) Option {
	return func(x *Clients) {
		x.storage = client
	}
}

func WithPolicy(client interfaces.Policy) Option {
	return func(x *Clients) {
		x.policy = client
	}
}
