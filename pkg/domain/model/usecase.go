package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// FetchOptions controls which files are fetched from a repository.
type FetchOptions struct {
	Mode        types.FetchMode
	Extensions  []string
	MaxFileSize int64
	Concurrency int
}

type AnalyzeRepositoryInput struct {
	Repository RepositoryRef
	Detail     types.DetailLevel
	Fetch      FetchOptions
}

func (x *AnalyzeRepositoryInput) Validate() error {
	if err := x.Repository.Validate(); err != nil {
		return err
	}
	if _, err := types.ParseDetailLevel(string(x.Detail)); err != nil {
		return err
	}
	if _, err := types.ParseFetchMode(string(x.Fetch.Mode)); err != nil {
		return err
	}
	if x.Fetch.MaxFileSize < 0 {
		return goerr.Wrap(types.ErrInvalidOption, "max file size must not be negative", goerr.V("size", x.Fetch.MaxFileSize))
	}
	if x.Fetch.Concurrency < 0 {
		return goerr.Wrap(types.ErrInvalidOption, "concurrency must not be negative", goerr.V("concurrency", x.Fetch.Concurrency))
	}
	return nil
}

type AnalyzeDirectoryInput struct {
	Dir        string
	Repository RepositoryRef
	Detail     types.DetailLevel
	Fetch      FetchOptions
}

func (x *AnalyzeDirectoryInput) Validate() error {
	if x.Dir == "" {
		return goerr.Wrap(types.ErrInvalidOption, "directory is required")
	}
	if _, err := types.ParseDetailLevel(string(x.Detail)); err != nil {
		return err
	}
	return nil
}

// PolicyResult is output of the policy gate.
type PolicyResult struct {
	Fail []PolicyViolation `json:"fail"`
}

type PolicyViolation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}
