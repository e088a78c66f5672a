package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// FetchRepository downloads text files of the repository. The returned RepositoryRef has resolved ref and commit.
func (x *UseCase) FetchRepository(ctx context.Context, input *model.AnalyzeRepositoryInput) (*model.RepositoryRef, []model.SourceFile, error) {
	if err := input.Validate(); err != nil {
		return nil, nil, goerr.Wrap(err, "invalid input", goerr.V("repo", input.Repository))
	}

	gh := x.clients.GitHub()
	if gh == nil {
		return nil, nil, goerr.Wrap(types.ErrAuthentication, "GitHub credential is not configured")
	}

	repo := input.Repository
	if repo.Ref == "" {
		info, err := gh.GetRepository(ctx, repo.Owner, repo.Name)
		if err != nil {
			return nil, nil, err
		}
		if info.DefaultBranch == "" {
			return nil, nil, goerr.Wrap(types.ErrInvalidGitHubData, "repository has no default branch", goerr.V("repo", repo))
		}
		repo.Ref = info.DefaultBranch
	}

	sha, err := gh.ResolveCommit(ctx, repo)
	if err != nil {
		return nil, nil, err
	}
	repo.Commit = sha

	logger := logging.From(ctx).With("repo", repo.String(), "commit", sha)
	logger.Info("fetching repository", "mode", input.Fetch.Mode)

	filter := newFileFilter(input.Fetch)

	var files []model.SourceFile
	switch input.Fetch.Mode {
	case types.FetchModeArchive:
		files, err = x.fetchArchive(ctx, gh, repo, filter)
	default:
		files, err = fetchTree(ctx, gh, repo, filter, input.Fetch.Concurrency)
	}
	if err != nil {
		return nil, nil, err
	}

	slices.SortFunc(files, func(a, b model.SourceFile) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})

	logger.Info("repository fetched", "files", len(files))
	return &repo, files, nil
}
