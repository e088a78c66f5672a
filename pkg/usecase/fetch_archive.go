package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"github.com/secmon-lab/ecocoder/pkg/utils/safe"
)

// fetchArchive downloads zipball of the commit and extracts accepted files in memory.
func (x *UseCase) fetchArchive(ctx context.Context, gh interfaces.GitHub, repo model.RepositoryRef, filter *fileFilter) ([]model.SourceFile, error) {
	zipURL, err := gh.GetArchiveURL(ctx, repo)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := downloadZipFile(ctx, x.clients.HTTPClient(), zipURL, &buf); err != nil {
		return nil, err
	}
	logging.From(ctx).Debug("archive downloaded", "size", buf.Len())

	return extractZip(ctx, buf.Bytes(), filter)
}

func downloadZipFile(ctx context.Context, httpClient infra.HTTPClient, zipURL *url.URL, w io.Writer) error {
	zipReq, err := http.NewRequestWithContext(ctx, http.MethodGet, zipURL.String(), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request for zip file", goerr.V("url", zipURL))
	}

	zipResp, err := httpClient.Do(zipReq)
	if err != nil {
		return goerr.Wrap(types.ErrNetwork, "failed to download zip file", goerr.V("url", zipURL), goerr.V("cause", err.Error()))
	}
	defer safe.Close(zipResp.Body)

	switch {
	case zipResp.StatusCode == http.StatusOK:
	case zipResp.StatusCode == http.StatusNotFound:
		return goerr.Wrap(types.ErrNotFound, "zip file not found", goerr.V("url", zipURL))
	case zipResp.StatusCode >= 500:
		return goerr.Wrap(types.ErrNetwork, "zip file server error", goerr.V("url", zipURL), goerr.V("status", zipResp.StatusCode))
	default:
		body, _ := io.ReadAll(io.LimitReader(zipResp.Body, 4096))
		return goerr.Wrap(types.ErrInvalidGitHubData, "failed to download zip file",
			goerr.V("url", zipURL),
			goerr.V("status", zipResp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	if _, err = io.Copy(w, zipResp.Body); err != nil {
		return goerr.Wrap(types.ErrNetwork, "failed to read zip file", goerr.V("url", zipURL), goerr.V("cause", err.Error()))
	}

	return nil
}

func extractZip(ctx context.Context, data []byte, filter *fileFilter) ([]model.SourceFile, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidGitHubData, "failed to open zip file", goerr.V("cause", err.Error()))
	}

	var files []model.SourceFile
	for _, f := range zr.File {
		file, err := extractCode(ctx, f, filter)
		if err != nil {
			return nil, err
		}
		if file != nil {
			files = append(files, *file)
		}
	}

	return files, nil
}

func extractCode(ctx context.Context, f *zip.File, filter *fileFilter) (*model.SourceFile, error) {
	if f.FileInfo().IsDir() {
		return nil, nil
	}

	target, err := stepDownDirectory(f.Name)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, nil
	}

	// #nosec G115
	if !filter.accept(target, int64(f.UncompressedSize64)) {
		return nil, nil
	}

	rc, err := f.Open()
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidGitHubData, "failed to open zip entry", goerr.V("path", f.Name), goerr.V("cause", err.Error()))
	}
	defer safe.Close(rc)

	// #nosec G110
	content, err := io.ReadAll(io.LimitReader(rc, filter.maxSize+1))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidGitHubData, "failed to read zip entry", goerr.V("path", f.Name), goerr.V("cause", err.Error()))
	}
	if int64(len(content)) > filter.maxSize {
		logging.From(ctx).Debug("skip large file", "path", target)
		return nil, nil
	}
	if isBinary(content) {
		logging.From(ctx).Debug("skip binary file", "path", target)
		return nil, nil
	}

	file := model.NewSourceFile(target, content)
	return &file, nil
}

// stepDownDirectory removes the top directory (<repo>-<sha>/) added by GitHub zipball.
func stepDownDirectory(fpath string) (string, error) {
	normalized := strings.ReplaceAll(fpath, "\\", "/")
	normalized = strings.TrimLeft(normalized, "/")
	if normalized == "" {
		return "", nil
	}

	parts := strings.Split(normalized, "/")
	if len(parts) <= 1 {
		return "", nil
	}

	var safeParts []string
	for _, part := range parts[1:] {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", goerr.Wrap(types.ErrInvalidGitHubData, "illegal file path of zip", goerr.V("path", fpath))
		}
		safeParts = append(safeParts, part)
	}

	return strings.Join(safeParts, "/"), nil
}
