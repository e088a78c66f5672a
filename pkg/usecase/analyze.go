package usecase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/report"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

// AnalyzeRepository fetches the repository from GitHub, scans it and aggregates the findings.
func (x *UseCase) AnalyzeRepository(ctx context.Context, input *model.AnalyzeRepositoryInput) (*model.AnalysisReport, error) {
	repo, files, err := x.FetchRepository(ctx, input)
	if err != nil {
		return nil, err
	}
	fetchedAt := logging.CtxTime(ctx)

	return x.analyze(ctx, *repo, files, input.Detail, fetchedAt), nil
}

// AnalyzeDirectory scans a local checkout with the same file filter as remote fetching.
func (x *UseCase) AnalyzeDirectory(ctx context.Context, input *model.AnalyzeDirectoryInput) (*model.AnalysisReport, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	files, err := walkDirectory(ctx, input.Dir, newFileFilter(input.Fetch))
	if err != nil {
		return nil, err
	}
	fetchedAt := logging.CtxTime(ctx)

	repo := input.Repository
	if repo.Name == "" {
		abs, err := filepath.Abs(input.Dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve directory", goerr.V("dir", input.Dir))
		}
		repo.Name = filepath.Base(abs)
	}

	return x.analyze(ctx, repo, files, input.Detail, fetchedAt), nil
}

// analyze stamps the report with fetchedAt, the time the source snapshot was taken.
func (x *UseCase) analyze(ctx context.Context, repo model.RepositoryRef, files []model.SourceFile, detail types.DetailLevel, fetchedAt time.Time) *model.AnalysisReport {
	findings := x.scanner.Scan(ctx, files)

	r := report.Aggregate(ctx, repo, files, findings, detail,
		report.WithCatalogVersion(x.scanner.Version()),
		report.WithGeneratedAt(fetchedAt),
	)
	logging.From(ctx).Info("analysis finished",
		"repo", repo.String(),
		"report_id", r.ID,
		"files", r.Metrics.FilesAnalyzed,
		"findings", len(findings),
		"reported", r.Summary.TotalFindings,
	)
	return r
}

func walkDirectory(ctx context.Context, root string, filter *fileFilter) ([]model.SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(types.ErrNotFound, "directory not found", goerr.V("dir", root))
		}
		return nil, goerr.Wrap(err, "failed to stat directory", goerr.V("dir", root))
	}
	if !info.IsDir() {
		return nil, goerr.Wrap(types.ErrInvalidOption, "not a directory", goerr.V("dir", root))
	}

	var files []model.SourceFile
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return goerr.Wrap(err, "failed to walk directory", goerr.V("path", p))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if p != root && isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return goerr.Wrap(err, "failed to get relative path", goerr.V("path", p))
		}
		fi, err := d.Info()
		if err != nil {
			return goerr.Wrap(err, "failed to get file info", goerr.V("path", p))
		}
		if !filter.accept(filepath.ToSlash(rel), fi.Size()) {
			return nil
		}

		// #nosec G304
		content, err := os.ReadFile(p)
		if err != nil {
			return goerr.Wrap(err, "failed to read file", goerr.V("path", p))
		}
		if isBinary(content) {
			return nil
		}

		files = append(files, model.NewSourceFile(filepath.ToSlash(rel), content))
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("directory walked", "dir", root, "files", len(files))
	return files, nil
}
