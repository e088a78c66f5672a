package config_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ecocoder/pkg/cli/config"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// parse applies args to flags through a throwaway command.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(ctx context.Context, c *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func flagNames(flags []cli.Flag) map[string]bool {
	names := make(map[string]bool)
	for _, flag := range flags {
		names[flag.Names()[0]] = true
	}
	return names
}

func TestGitHubNewClient(t *testing.T) {
	for _, key := range []string{"GITHUB_TOKEN", "ECOCODER_GITHUB_TOKEN", "ECOCODER_GITHUB_APP_ID", "ECOCODER_GITHUB_APP_INSTALL_ID", "ECOCODER_GITHUB_APP_PRIVATE_KEY", "ECOCODER_GITHUB_BASE_URL"} {
		t.Setenv(key, "")
		gt.NoError(t, os.Unsetenv(key))
	}

	t.Run("no credential", func(t *testing.T) {
		var cfg config.GitHub
		parse(t, cfg.Flags())
		_, err := cfg.NewClient()
		gt.True(t, errors.Is(err, types.ErrAuthentication))
	})

	t.Run("token", func(t *testing.T) {
		var cfg config.GitHub
		parse(t, cfg.Flags(), "--token", "ghp_dummy")
		client, err := cfg.NewClient()
		gt.NoError(t, err)
		gt.True(t, client != nil)
	})

	t.Run("incomplete GitHub App", func(t *testing.T) {
		var cfg config.GitHub
		parse(t, cfg.Flags(), "--github-app-id", "123")
		_, err := cfg.NewClient()
		gt.True(t, errors.Is(err, types.ErrAuthentication))
	})

	t.Run("missing private key file", func(t *testing.T) {
		var cfg config.GitHub
		parse(t, cfg.Flags(),
			"--github-app-id", "123",
			"--github-app-install-id", "456",
			"--github-app-private-key", filepath.Join(t.TempDir(), "no-such.pem"),
		)
		_, err := cfg.NewClient()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("enterprise host", func(t *testing.T) {
		var cfg config.GitHub
		parse(t, cfg.Flags(), "--github-base-url", "https://ghe.example.com/api/v3/")
		gt.A(t, cfg.Hosts()).Longer(2)
		gt.V(t, cfg.Hosts()[2]).Equal("ghe.example.com")
	})
}

func TestReport(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.Report
		parse(t, cfg.Flags())

		format := gt.R1(cfg.Format()).NoError(t)
		gt.V(t, format).Equal(types.OutputText)
		detail := gt.R1(cfg.Detail()).NoError(t)
		gt.V(t, detail).Equal(types.DetailBasic)
	})

	t.Run("short flags", func(t *testing.T) {
		var cfg config.Report
		parse(t, cfg.Flags(), "-o", "HTML", "-d", "comprehensive")

		format := gt.R1(cfg.Format()).NoError(t)
		gt.V(t, format).Equal(types.OutputHTML)
		detail := gt.R1(cfg.Detail()).NoError(t)
		gt.V(t, detail).Equal(types.DetailComprehensive)
	})

	t.Run("unsupported format", func(t *testing.T) {
		var cfg config.Report
		parse(t, cfg.Flags(), "-o", "xml")
		_, err := cfg.Format()
		gt.True(t, errors.Is(err, types.ErrUnsupportedFormat))
	})

	t.Run("stdout without out-file", func(t *testing.T) {
		var cfg config.Report
		parse(t, cfg.Flags())

		var buf bytes.Buffer
		w := gt.R1(cfg.Open(&buf)).NoError(t)
		_ = gt.R1(w.Write([]byte("hello"))).NoError(t)
		gt.NoError(t, w.Close())
		gt.V(t, buf.String()).Equal("hello")
	})

	t.Run("out-file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.txt")
		var cfg config.Report
		parse(t, cfg.Flags(), "--out-file", path)

		var buf bytes.Buffer
		w := gt.R1(cfg.Open(&buf)).NoError(t)
		_ = gt.R1(w.Write([]byte("hello"))).NoError(t)
		gt.NoError(t, w.Close())

		gt.V(t, buf.Len()).Equal(0)
		raw := gt.R1(os.ReadFile(path)).NoError(t)
		gt.V(t, string(raw)).Equal("hello")
	})
}

func TestFetch(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.Fetch
		parse(t, cfg.Flags())

		opt := gt.R1(cfg.Options()).NoError(t)
		gt.V(t, opt.Mode).Equal(types.FetchModeTree)
		gt.V(t, opt.Concurrency).Equal(4)
		gt.V(t, opt.MaxFileSize).Equal(int64(1 << 20))
		gt.V(t, cfg.Ref()).Equal("")
	})

	t.Run("archive with extensions", func(t *testing.T) {
		var cfg config.Fetch
		parse(t, cfg.Flags(), "--fetch-mode", "archive", "--ext", ".go", "--ext", ".py", "--ref", "develop")

		opt := gt.R1(cfg.Options()).NoError(t)
		gt.V(t, opt.Mode).Equal(types.FetchModeArchive)
		gt.V(t, opt.Extensions).Equal([]string{".go", ".py"})
		gt.V(t, cfg.Ref()).Equal("develop")
	})

	t.Run("unknown mode", func(t *testing.T) {
		var cfg config.Fetch
		parse(t, cfg.Flags(), "--fetch-mode", "clone")
		_, err := cfg.Options()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("filter flags only", func(t *testing.T) {
		var cfg config.Fetch
		names := flagNames(cfg.FilterFlags())
		gt.True(t, names["ext"])
		gt.True(t, names["max-file-size"])
		gt.False(t, names["fetch-mode"])
	})
}

func TestCatalogNewScanner(t *testing.T) {
	t.Run("built-in", func(t *testing.T) {
		var cfg config.Catalog
		parse(t, cfg.Flags(), "--disable-rule", "ECO001")

		s := gt.R1(cfg.NewScanner()).NoError(t)
		for _, r := range s.Rules() {
			gt.V(t, r.ID).NotEqual("ECO001")
		}
	})

	t.Run("missing catalog file", func(t *testing.T) {
		var cfg config.Catalog
		parse(t, cfg.Flags(), "--rules", filepath.Join(t.TempDir(), "none.yaml"))
		_, err := cfg.NewScanner()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestOptionalSinks(t *testing.T) {
	ctx := context.Background()

	t.Run("BigQuery is disabled without project", func(t *testing.T) {
		var cfg config.BigQuery
		gt.False(t, cfg.Enabled())
		client, err := cfg.NewClient(ctx)
		gt.NoError(t, err)
		gt.True(t, client == nil)
	})

	t.Run("storage is disabled without bucket", func(t *testing.T) {
		var cfg config.Storage
		parse(t, cfg.Flags())
		gt.False(t, cfg.Enabled())
		client, err := cfg.NewClient(ctx)
		gt.NoError(t, err)
		gt.True(t, client == nil)

		format := gt.R1(cfg.Format()).NoError(t)
		gt.V(t, format).Equal(types.OutputJSON)
	})

	t.Run("policy is disabled without path", func(t *testing.T) {
		var cfg config.Policy
		client, err := cfg.NewClient()
		gt.NoError(t, err)
		gt.True(t, client == nil)
	})

	t.Run("broken policy", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "bad.rego"), []byte("package ecocoder\n\nfail contains"), 0644))

		var cfg config.Policy
		parse(t, cfg.Flags(), "--policy", dir)
		_, err := cfg.NewClient()
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}
