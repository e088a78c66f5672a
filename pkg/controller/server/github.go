package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/domain/interfaces"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/utils/errutil"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
)

const zeroCommit = "0000000000000000000000000000000000000000"

func handleGitHubWebhook(uc interfaces.UseCase, cfg *config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ValidatePayload accepts any payload when the secret is empty
		if cfg.webhookSecret == "" {
			errutil.HandleError(r.Context(), "GitHub webhook is not configured", goerr.Wrap(types.ErrAuthentication, "webhook secret is not set"))
			safeWrite(w, http.StatusUnauthorized, []byte("webhook secret is not configured"))
			return
		}

		payload, err := github.ValidatePayload(r, []byte(cfg.webhookSecret))
		if err != nil {
			err = goerr.Wrap(types.ErrAuthentication, "invalid webhook signature", goerr.V("cause", err.Error()))
			errutil.HandleError(r.Context(), "fail to validate GitHub webhook", err)
			safeWrite(w, http.StatusUnauthorized, []byte("invalid signature"))
			return
		}

		event, err := github.ParseWebHook(github.WebHookType(r), payload)
		if err != nil {
			errutil.HandleError(r.Context(), "fail to parse GitHub webhook", goerr.Wrap(types.ErrInvalidOption, "parsing webhook", goerr.V("cause", err.Error())))
			safeWrite(w, http.StatusBadRequest, []byte("invalid payload"))
			return
		}

		repo := githubEventToRepository(r.Context(), event)
		if repo == nil {
			safeWrite(w, http.StatusOK, []byte("ignored"))
			return
		}

		input := &model.AnalyzeRepositoryInput{
			Repository: *repo,
			Detail:     cfg.detail,
			Fetch:      cfg.fetch,
		}
		bgCtx := logging.Detach(r.Context())
		cfg.runner(func() { runAnalysis(bgCtx, uc, input) })

		safeWrite(w, http.StatusAccepted, []byte("accepted"))
	}
}

// runAnalysis analyzes the repository and exports the report. It is called in background.
func runAnalysis(ctx context.Context, uc interfaces.UseCase, input *model.AnalyzeRepositoryInput) {
	logger := logging.From(ctx).With(slog.String("repo", input.Repository.String()))
	logger.Info("starting repository analysis")

	rpt, err := uc.AnalyzeRepository(ctx, input)
	if err != nil {
		errutil.HandleError(ctx, "background analysis failed", err)
		return
	}

	if err := uc.ExportReport(ctx, rpt); err != nil {
		errutil.HandleError(ctx, "fail to export report", err)
		return
	}

	if _, err := uc.EvaluatePolicy(ctx, rpt); err != nil {
		errutil.HandleError(ctx, "policy check failed", err)
		return
	}

	logger.Info("repository analysis completed", slog.String("report_id", rpt.ID.String()))
}

// githubEventToRepository returns the commit to analyze for the event, or nil when the event is not analyzed.
func githubEventToRepository(ctx context.Context, event any) *model.RepositoryRef {
	logger := logging.From(ctx)

	switch ev := event.(type) {
	case *github.PushEvent:
		if ev.GetDeleted() || ev.GetAfter() == "" || ev.GetAfter() == zeroCommit {
			logger.Debug("ignore push event without commit", slog.String("ref", ev.GetRef()))
			return nil
		}
		return &model.RepositoryRef{
			Owner:  ev.GetRepo().GetOwner().GetLogin(),
			Name:   ev.GetRepo().GetName(),
			Ref:    ev.GetAfter(),
			Commit: types.CommitSHA(ev.GetAfter()),
		}

	case *github.PullRequestEvent:
		if ev.GetAction() != "opened" && ev.GetAction() != "synchronize" {
			logger.Debug("ignore PR event", slog.String("action", ev.GetAction()))
			return nil
		}
		if ev.GetPullRequest().GetDraft() {
			logger.Debug("ignore draft PR", slog.Int("number", ev.GetPullRequest().GetNumber()))
			return nil
		}
		sha := ev.GetPullRequest().GetHead().GetSHA()
		return &model.RepositoryRef{
			Owner:  ev.GetRepo().GetOwner().GetLogin(),
			Name:   ev.GetRepo().GetName(),
			Ref:    sha,
			Commit: types.CommitSHA(sha),
		}

	default:
		logger.Debug("unsupported event", slog.String("event", fmt.Sprintf("%T", event)))
		return nil
	}
}
