package model

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

var (
	ptnOwner    = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)
	ptnRepoName = regexp.MustCompile(`^[A-Za-z0-9._-]{1,100}$`)
)

// RepositoryRef identifies a GitHub repository and optionally a ref (branch, tag or commit SHA) in it.
type RepositoryRef struct {
	Owner string `json:"owner" bigquery:"owner"`
	Name  string `json:"name" bigquery:"name"`
	Ref   string `json:"ref,omitempty" bigquery:"ref"`

	// Commit is the resolved commit SHA when it is known after fetching.
	Commit types.CommitSHA `json:"commit,omitempty" bigquery:"commit"`
}

func (x RepositoryRef) String() string {
	s := x.Owner + "/" + x.Name
	if x.Ref != "" {
		s += "@" + x.Ref
	}
	return s
}

func (x RepositoryRef) FullName() string {
	return x.Owner + "/" + x.Name
}

func (x RepositoryRef) WithRef(ref string) RepositoryRef {
	x.Ref = ref
	return x
}

func (x RepositoryRef) WithCommit(sha types.CommitSHA) RepositoryRef {
	x.Commit = sha
	return x
}

func (x *RepositoryRef) Validate() error {
	if !ptnOwner.MatchString(x.Owner) {
		return goerr.Wrap(types.ErrValidationFailed, "invalid repository owner", goerr.V("owner", x.Owner))
	}
	if !ptnRepoName.MatchString(x.Name) || x.Name == "." || x.Name == ".." {
		return goerr.Wrap(types.ErrValidationFailed, "invalid repository name", goerr.V("name", x.Name))
	}
	return nil
}

// ParseRepositoryURL parses a repository URL such as https://github.com/owner/repo,
// https://github.com/owner/repo.git or https://github.com/owner/repo/tree/<ref>.
// hosts overrides the accepted host names (default: github.com).
func ParseRepositoryURL(raw string, hosts ...string) (RepositoryRef, error) {
	if len(hosts) == 0 {
		hosts = []string{"github.com", "www.github.com"}
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return RepositoryRef{}, goerr.Wrap(types.ErrInvalidRepositoryURL, "failed to parse repository URL",
			goerr.V("url", raw), goerr.V("cause", err.Error()))
	}
	if u.Scheme != "https" {
		return RepositoryRef{}, goerr.Wrap(types.ErrInvalidRepositoryURL, "repository URL must start with https://",
			goerr.V("url", raw))
	}

	hostOK := false
	for _, h := range hosts {
		if strings.EqualFold(u.Host, h) {
			hostOK = true
			break
		}
	}
	if !hostOK {
		return RepositoryRef{}, goerr.Wrap(types.ErrInvalidRepositoryURL, "only GitHub repositories are supported",
			goerr.V("url", raw), goerr.V("host", u.Host))
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepositoryRef{}, goerr.Wrap(types.ErrInvalidRepositoryURL, "repository URL must contain owner and repository name",
			goerr.V("url", raw))
	}

	ref := RepositoryRef{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}

	switch {
	case len(parts) == 2:
	case len(parts) >= 4 && (parts[2] == "tree" || parts[2] == "commit"):
		ref.Ref = strings.Join(parts[3:], "/")
	default:
		return RepositoryRef{}, goerr.Wrap(types.ErrInvalidRepositoryURL, "unsupported repository URL path",
			goerr.V("url", raw))
	}

	if err := ref.Validate(); err != nil {
		return RepositoryRef{}, goerr.Wrap(types.ErrInvalidRepositoryURL, "invalid repository URL",
			goerr.V("url", raw), goerr.V("cause", err.Error()))
	}

	return ref, nil
}

// GitHubRepository is a subset of repository information returned by GitHub API.
type GitHubRepository struct {
	Owner         string
	Name          string
	DefaultBranch string
	Private       bool
	Archived      bool
}
