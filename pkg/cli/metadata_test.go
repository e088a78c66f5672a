package cli_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/cli"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
)

func initGitRepo(t *testing.T, remoteURL string) (string, string) {
	t.Helper()
	dir := t.TempDir()

	repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
	if remoteURL != "" {
		gt.R1(repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{remoteURL},
		})).NoError(t)
	}

	gt.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(nestedLoopGo), 0644))
	wt := gt.R1(repo.Worktree()).NoError(t)
	gt.R1(wt.Add("main.go")).NoError(t)
	hash := gt.R1(wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})).NoError(t)

	return dir, hash.String()
}

func TestDetectRepository(t *testing.T) {
	t.Run("https remote", func(t *testing.T) {
		dir, commit := initGitRepo(t, "https://github.com/octo/sample.git")

		var repo model.RepositoryRef
		gt.NoError(t, cli.DetectRepository(dir, &repo))
		gt.V(t, repo.Owner).Equal("octo")
		gt.V(t, repo.Name).Equal("sample")
		gt.V(t, repo.Commit).Equal(types.CommitSHA(commit))
		gt.V(t, repo.Ref).Equal("master")
	})

	t.Run("ssh remote", func(t *testing.T) {
		dir, _ := initGitRepo(t, "git@github.com:octo/ssh-sample.git")

		var repo model.RepositoryRef
		gt.NoError(t, cli.DetectRepository(dir, &repo))
		gt.V(t, repo.Owner).Equal("octo")
		gt.V(t, repo.Name).Equal("ssh-sample")
	})

	t.Run("sub directory of checkout", func(t *testing.T) {
		dir, _ := initGitRepo(t, "ssh://git@github.com/octo/nested.git")
		sub := filepath.Join(dir, "pkg")
		gt.NoError(t, os.MkdirAll(sub, 0755))

		var repo model.RepositoryRef
		gt.NoError(t, cli.DetectRepository(sub, &repo))
		gt.V(t, repo.Owner).Equal("octo")
		gt.V(t, repo.Name).Equal("nested")
	})

	t.Run("preserve given values", func(t *testing.T) {
		dir, _ := initGitRepo(t, "https://github.com/octo/sample.git")

		repo := model.RepositoryRef{Owner: "custom-owner", Name: "custom-repo", Ref: "v1.0.0", Commit: "custom-commit"}
		gt.NoError(t, cli.DetectRepository(dir, &repo))
		gt.V(t, repo).Equal(model.RepositoryRef{Owner: "custom-owner", Name: "custom-repo", Ref: "v1.0.0", Commit: "custom-commit"})
	})

	t.Run("no remote", func(t *testing.T) {
		dir, commit := initGitRepo(t, "")

		var repo model.RepositoryRef
		gt.NoError(t, cli.DetectRepository(dir, &repo))
		gt.V(t, repo.Owner).Equal("")
		gt.V(t, repo.Commit).Equal(types.CommitSHA(commit))
	})

	t.Run("non GitHub remote", func(t *testing.T) {
		dir, _ := initGitRepo(t, "https://gitlab.com/octo/sample.git")

		var repo model.RepositoryRef
		gt.Error(t, cli.DetectRepository(dir, &repo))
	})
}
