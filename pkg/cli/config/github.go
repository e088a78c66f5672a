package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub has credentials and endpoint of GitHub API. Either a token or GitHub App installation is required.
type GitHub struct {
	token      types.GitHubToken `masq:"secret"`
	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
	baseURL    string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Aliases:     []string{"t"},
			Usage:       "GitHub personal access token",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("ECOCODER_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub",
			Destination: (*int64)(&x.appID),
			Sources:     cli.EnvVars("ECOCODER_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID",
			Category:    "GitHub",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("ECOCODER_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM content or path to PEM file)",
			Category:    "GitHub",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("ECOCODER_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL for GitHub Enterprise Server (e.g. https://github.example.com/api/v3/)",
			Category:    "GitHub",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("ECOCODER_GITHUB_BASE_URL"),
		},
	}
}

func (x *GitHub) useApp() bool {
	return x.appID != 0 || x.installID != 0 || x.privateKey != ""
}

// NewClient creates GitHub API client. It fails with ErrAuthentication when no credential is given.
func (x *GitHub) NewClient() (*github.Client, error) {
	var options []github.Option

	switch {
	case x.token != "":
		options = append(options, github.WithToken(x.token))

	case x.useApp():
		if x.appID == 0 || x.installID == 0 || x.privateKey == "" {
			return nil, goerr.Wrap(types.ErrAuthentication, "github-app-id, github-app-install-id and github-app-private-key are required for GitHub App")
		}
		pem, err := loadPrivateKey(x.privateKey)
		if err != nil {
			return nil, err
		}
		options = append(options, github.WithApp(x.appID, x.installID, pem))

	default:
		return nil, goerr.Wrap(types.ErrAuthentication, "GitHub token is required, set --token or GITHUB_TOKEN")
	}

	if x.baseURL != "" {
		options = append(options, github.WithBaseURL(x.baseURL))
	}

	return github.New(options...)
}

// Hosts returns host names accepted in repository URLs.
func (x *GitHub) Hosts() []string {
	hosts := []string{"github.com", "www.github.com"}
	if x.baseURL == "" {
		return hosts
	}
	host := strings.TrimPrefix(strings.TrimPrefix(x.baseURL, "https://"), "http://")
	host, _, _ = strings.Cut(host, "/")
	return append(hosts, host)
}

func loadPrivateKey(v types.GitHubAppPrivateKey) (types.GitHubAppPrivateKey, error) {
	if strings.Contains(string(v), "-----BEGIN") {
		return v, nil
	}

	raw, err := os.ReadFile(filepath.Clean(string(v)))
	if err != nil {
		return "", goerr.Wrap(types.ErrInvalidOption, "failed to read GitHub App private key file", goerr.V("cause", err.Error()))
	}
	return types.GitHubAppPrivateKey(raw), nil
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(x.token)),
		slog.Int64("appID", int64(x.appID)),
		slog.Int64("installID", int64(x.installID)),
		slog.Int("privateKey.len", len(x.privateKey)),
		slog.String("baseURL", x.baseURL),
	)
}

// Webhook has the secret to validate GitHub webhook requests.
type Webhook struct {
	secret types.GitHubWebhookSecret `masq:"secret"`
}

func (x *Webhook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Category:    "GitHub",
			Destination: (*string)(&x.secret),
			Sources:     cli.EnvVars("ECOCODER_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

func (x Webhook) Secret() types.GitHubWebhookSecret {
	return x.secret
}

// Validate requires a secret. Without one, webhook signatures can not be verified.
func (x Webhook) Validate() error {
	if x.secret == "" {
		return goerr.Wrap(types.ErrInvalidOption, "GitHub webhook secret is required, set --github-webhook-secret")
	}
	return nil
}

func (x Webhook) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("secret.len", len(x.secret)),
	)
}
