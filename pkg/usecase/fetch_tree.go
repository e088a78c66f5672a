package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// fetchTree lists the commit tree and downloads blobs of accepted files with bounded concurrency.
func fetchTree(ctx context.Context, gh interfaces.GitHub, repo model.RepositoryRef, filter *fileFilter, concurrency int) ([]model.SourceFile, error) {
	entries, err := gh.ListTree(ctx, repo, repo.Commit)
	if err != nil {
		return nil, err
	}

	var targets []*model.TreeEntry
	for _, entry := range entries {
		if entry.Type != model.TreeEntryBlob {
			continue
		}
		if filter.accept(entry.Path, entry.Size) {
			targets = append(targets, entry)
		}
	}
	logging.From(ctx).Debug("tree listed", "entries", len(entries), "targets", len(targets))

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	slots := make([]*model.SourceFile, len(targets))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, entry := range targets {
		eg.Go(func() error {
			data, err := gh.GetBlob(egCtx, repo, entry.SHA)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch file", goerr.V("path", entry.Path))
			}
			if isBinary(data) {
				logging.From(egCtx).Debug("skip binary file", "path", entry.Path)
				return nil
			}
			file := model.NewSourceFile(entry.Path, data)
			slots[i] = &file
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	files := make([]model.SourceFile, 0, len(slots))
	for _, f := range slots {
		if f != nil {
			files = append(files, *f)
		}
	}
	return files, nil
}
