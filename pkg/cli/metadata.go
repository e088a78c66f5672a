package cli

import (
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

// DetectRepository fills empty fields of repo from the git checkout containing dir.
// It returns nil without change if dir is not in a git repository.
func DetectRepository(dir string, repo *model.RepositoryRef) error {
	gitRepo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil
		}
		return goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	if repo.Commit == "" || repo.Ref == "" {
		head, err := gitRepo.Head()
		if err != nil {
			return goerr.Wrap(err, "failed to get HEAD", goerr.V("dir", dir))
		}

		if repo.Commit == "" {
			repo.Commit = types.CommitSHA(head.Hash().String())
		}
		if repo.Ref == "" && head.Name().IsBranch() {
			repo.Ref = head.Name().Short()
		}
	}

	if repo.Owner != "" && repo.Name != "" {
		return nil
	}

	remote, err := gitRepo.Remote("origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return nil
		}
		return goerr.Wrap(err, "failed to get remote origin")
	}
	if len(remote.Config().URLs) == 0 {
		return nil
	}

	remoteURL := remote.Config().URLs[0]
	parsed, err := model.ParseRepositoryURL(remoteToHTTPS(remoteURL))
	if err != nil {
		return goerr.Wrap(err, "failed to parse GitHub owner/repo from git remote URL", goerr.V("url", remoteURL))
	}

	if repo.Owner == "" {
		repo.Owner = parsed.Owner
	}
	if repo.Name == "" {
		repo.Name = parsed.Name
	}
	return nil
}

// remoteToHTTPS converts git@github.com:owner/repo.git and ssh://git@github.com/owner/repo.git
// into https form.
func remoteToHTTPS(remote string) string {
	switch {
	case strings.HasPrefix(remote, "git@"):
		host, path, _ := strings.Cut(strings.TrimPrefix(remote, "git@"), ":")
		return "https://" + host + "/" + path
	case strings.HasPrefix(remote, "ssh://"):
		s := strings.TrimPrefix(remote, "ssh://")
		if _, after, ok := strings.Cut(s, "@"); ok {
			s = after
		}
		return "https://" + s
	default:
		return remote
	}
}
