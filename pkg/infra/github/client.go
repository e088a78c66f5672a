package github

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"golang.org/x/oauth2"
)

type Client struct {
	client *github.Client

	token     types.GitHubToken
	appID     types.GitHubAppID
	installID types.GitHubAppInstallID
	pem       types.GitHubAppPrivateKey

	baseURL     string
	transport   http.RoundTripper
	maxAttempts int
	retryDelay  time.Duration
}

var _ interfaces.GitHub = (*Client)(nil)

type Option func(*Client)

// WithToken sets a personal access token.
func WithToken(token types.GitHubToken) Option {
	return func(x *Client) {
		x.token = token
	}
}

// WithApp authenticates as a GitHub App installation.
func WithApp(appID types.GitHubAppID, installID types.GitHubAppInstallID, pem types.GitHubAppPrivateKey) Option {
	return func(x *Client) {
		x.appID = appID
		x.installID = installID
		x.pem = pem
	}
}

// WithBaseURL sets REST API endpoint such as https://ghe.example.com/api/v3/
func WithBaseURL(baseURL string) Option {
	return func(x *Client) {
		x.baseURL = baseURL
	}
}

func WithTransport(tr http.RoundTripper) Option {
	return func(x *Client) {
		x.transport = tr
	}
}

// WithRetry sets max attempts for transient failures and the base delay between them. The delay grows linearly.
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(x *Client) {
		x.maxAttempts = maxAttempts
		x.retryDelay = delay
	}
}

// New creates GitHub API client. Either token or GitHub App credential is required,
// otherwise types.ErrAuthentication is returned without any API call.
func New(options ...Option) (*Client, error) {
	x := &Client{
		transport:   http.DefaultTransport,
		maxAttempts: 3,
		retryDelay:  time.Second,
	}
	for _, opt := range options {
		opt(x)
	}

	if x.maxAttempts < 1 {
		x.maxAttempts = 1
	}

	var httpClient *http.Client
	switch {
	case x.token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(x.token)})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Transport: x.transport})
		httpClient = oauth2.NewClient(ctx, ts)

	case x.appID != 0:
		if x.installID == 0 {
			return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App installation ID is required", goerr.V("appID", x.appID))
		}
		if x.pem == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub App private key is required", goerr.V("appID", x.appID))
		}
		itr, err := ghinstallation.New(x.transport, int64(x.appID), int64(x.installID), []byte(x.pem))
		if err != nil {
			return nil, goerr.Wrap(types.ErrAuthentication, "failed to create GitHub App transport",
				goerr.V("appID", x.appID), goerr.V("cause", err.Error()))
		}
		if x.baseURL != "" {
			itr.BaseURL = strings.TrimSuffix(x.baseURL, "/")
		}
		httpClient = &http.Client{Transport: itr}

	default:
		return nil, goerr.Wrap(types.ErrAuthentication, "GitHub token is required, set --token or GITHUB_TOKEN")
	}

	x.client = github.NewClient(httpClient)
	if x.baseURL != "" {
		u, err := url.Parse(x.baseURL)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub base URL", goerr.V("url", x.baseURL))
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		x.client.BaseURL = u
		x.client.UploadURL = u
	}

	return x, nil
}

// call runs fn and retries it on transient failure. Errors are classified into types.Err* sentinels.
func (x *Client) call(ctx context.Context, name string, fn func() (*github.Response, error)) error {
	var lastErr error
	for attempt := 1; attempt <= x.maxAttempts; attempt++ {
		resp, err := fn()
		if err == nil {
			return nil
		}

		classified, retryable := classifyError(err, resp)
		lastErr = goerr.Wrap(classified, "GitHub API call failed",
			goerr.V("api", name), goerr.V("attempt", attempt), goerr.V("cause", err.Error()))
		if !retryable || attempt == x.maxAttempts {
			break
		}

		logging.From(ctx).Warn("retrying GitHub API call",
			slog.String("api", name),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)

		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "canceled while waiting for retry", goerr.V("api", name))
		case <-time.After(x.retryDelay * time.Duration(attempt)):
		}
	}

	return lastErr
}

// classifyError maps go-github errors to sentinel errors and tells whether the call can be retried.
func classifyError(err error, resp *github.Response) (error, bool) {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return goerr.Wrap(types.ErrRateLimit, "GitHub API rate limit exceeded",
			goerr.V("reset", rateErr.Rate.Reset.Time)), false
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return goerr.Wrap(types.ErrRateLimit, "GitHub secondary rate limit exceeded",
			goerr.V("retry_after", abuseErr.GetRetryAfter())), false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err, false
	}

	var (
		status int
		msg    string
		header http.Header
	)
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		status = respErr.Response.StatusCode
		header = respErr.Response.Header
		msg = respErr.Message
	} else if resp != nil && resp.Response != nil {
		status = resp.StatusCode
		header = resp.Header
	}

	switch {
	case status == http.StatusUnauthorized:
		return types.ErrAuthentication, false
	case status == http.StatusForbidden && strings.Contains(msg, "Bad credentials"):
		return types.ErrAuthentication, false
	case status == http.StatusTooManyRequests:
		return types.ErrRateLimit, false
	case status == http.StatusForbidden && header.Get("X-RateLimit-Remaining") == "0":
		return types.ErrRateLimit, false
	case status == http.StatusNotFound:
		return types.ErrNotFound, false
	case status == http.StatusUnprocessableEntity && isUnknownRef(msg):
		return types.ErrNotFound, false
	case status >= 500:
		return types.ErrNetwork, true
	case status != 0:
		return err, false
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return types.ErrNetwork, true
	}

	return err, false
}

// isUnknownRef matches the 422 messages GitHub returns for a ref or commit SHA that does not exist.
func isUnknownRef(msg string) bool {
	return strings.Contains(msg, "No commit found") || strings.Contains(msg, "No ref found")
}

func (x *Client) GetRepository(ctx context.Context, owner, name string) (*model.GitHubRepository, error) {
	var repo *github.Repository
	if err := x.call(ctx, "Repositories.Get", func() (*github.Response, error) {
		r, resp, err := x.client.Repositories.Get(ctx, owner, name)
		repo = r
		return resp, err
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to get repository", goerr.V("owner", owner), goerr.V("name", name))
	}

	return &model.GitHubRepository{
		Owner:         repo.GetOwner().GetLogin(),
		Name:          repo.GetName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Private:       repo.GetPrivate(),
		Archived:      repo.GetArchived(),
	}, nil
}

func (x *Client) ResolveCommit(ctx context.Context, repo model.RepositoryRef) (types.CommitSHA, error) {
	var sha string
	if err := x.call(ctx, "Repositories.GetCommitSHA1", func() (*github.Response, error) {
		s, resp, err := x.client.Repositories.GetCommitSHA1(ctx, repo.Owner, repo.Name, repo.Ref, "")
		sha = s
		return resp, err
	}); err != nil {
		return "", goerr.Wrap(err, "failed to resolve ref", goerr.V("repo", repo))
	}

	return types.CommitSHA(strings.TrimSpace(sha)), nil
}

func (x *Client) ListTree(ctx context.Context, repo model.RepositoryRef, sha types.CommitSHA) ([]*model.TreeEntry, error) {
	tree, err := x.getTree(ctx, repo, string(sha), true)
	if err != nil {
		return nil, err
	}

	var entries []*model.TreeEntry
	if !tree.GetTruncated() {
		entries = toTreeEntries("", tree.Entries)
	} else {
		logging.From(ctx).Info("tree is truncated, walking sub trees", slog.Any("repo", repo), slog.Any("sha", sha))
		entries, err = x.walkTree(ctx, repo, string(sha))
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// walkTree lists the tree level by level with non recursive calls.
func (x *Client) walkTree(ctx context.Context, repo model.RepositoryRef, rootSHA string) ([]*model.TreeEntry, error) {
	type node struct {
		prefix string
		sha    string
	}

	var entries []*model.TreeEntry
	queue := []node{{sha: rootSHA}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		tree, err := x.getTree(ctx, repo, n.sha, false)
		if err != nil {
			return nil, err
		}

		for _, e := range toTreeEntries(n.prefix, tree.Entries) {
			entries = append(entries, e)
			if e.Type == model.TreeEntryTree {
				queue = append(queue, node{prefix: e.Path, sha: e.SHA})
			}
		}
	}

	return entries, nil
}

func (x *Client) getTree(ctx context.Context, repo model.RepositoryRef, sha string, recursive bool) (*github.Tree, error) {
	var tree *github.Tree
	if err := x.call(ctx, "Git.GetTree", func() (*github.Response, error) {
		t, resp, err := x.client.Git.GetTree(ctx, repo.Owner, repo.Name, sha, recursive)
		tree = t
		return resp, err
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to get tree", goerr.V("repo", repo), goerr.V("sha", sha))
	}
	return tree, nil
}

func toTreeEntries(prefix string, src []*github.TreeEntry) []*model.TreeEntry {
	entries := make([]*model.TreeEntry, 0, len(src))
	for _, e := range src {
		p := e.GetPath()
		if prefix != "" {
			p = path.Join(prefix, p)
		}
		entries = append(entries, &model.TreeEntry{
			Path: p,
			SHA:  e.GetSHA(),
			Type: e.GetType(),
			Size: int64(e.GetSize()),
		})
	}
	return entries
}

func (x *Client) GetBlob(ctx context.Context, repo model.RepositoryRef, sha string) ([]byte, error) {
	var data []byte
	if err := x.call(ctx, "Git.GetBlobRaw", func() (*github.Response, error) {
		b, resp, err := x.client.Git.GetBlobRaw(ctx, repo.Owner, repo.Name, sha)
		data = b
		return resp, err
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to get blob", goerr.V("repo", repo), goerr.V("sha", sha))
	}
	return data, nil
}

func (x *Client) GetArchiveURL(ctx context.Context, repo model.RepositoryRef) (*url.URL, error) {
	opt := &github.RepositoryContentGetOptions{
		Ref: repo.Ref,
	}
	if repo.Commit != "" {
		opt.Ref = string(repo.Commit)
	}

	// https://docs.github.com/en/rest/repos/contents?apiVersion=2022-11-28#download-a-repository-archive-zip
	var link *url.URL
	if err := x.call(ctx, "Repositories.GetArchiveLink", func() (*github.Response, error) {
		u, resp, err := x.client.Repositories.GetArchiveLink(ctx, repo.Owner, repo.Name, github.Zipball, opt, false)
		link = u
		return resp, err
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to get archive link", goerr.V("repo", repo))
	}

	logging.From(ctx).Debug("got archive link", slog.Any("repo", repo))
	return link, nil
}
