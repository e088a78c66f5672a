package policy

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/opac"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// Query is the Rego document evaluated against a report.
const Query = "data.ecocoder"

type Client struct {
	client *opac.Client
}

var _ interfaces.Policy = (*Client)(nil)

// New loads Rego policy files from paths (files or directories).
func New(paths ...string) (*Client, error) {
	if len(paths) == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "policy path is required")
	}

	client, err := opac.New(opac.Files(paths...))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to load policy",
			goerr.V("paths", paths), goerr.V("cause", err.Error()))
	}

	return &Client{client: client}, nil
}

func (x *Client) Query(ctx context.Context, input any, output any) error {
	if err := x.client.Query(ctx, Query, input, output); err != nil {
		return goerr.Wrap(err, "failed to evaluate policy", goerr.V("query", Query))
	}
	return nil
}
