package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/ecocoder/pkg/cli/config"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra"
	"github.com/secmon-lab/ecocoder/pkg/report"
	"github.com/secmon-lab/ecocoder/pkg/usecase"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"github.com/secmon-lab/ecocoder/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// sinks has optional destinations and gates of a report shared by all commands.
type sinks struct {
	catalog  config.Catalog
	policy   config.Policy
	bigQuery config.BigQuery
	storage  config.Storage
}

func (x *sinks) Flags() []cli.Flag {
	return slice.Flatten(
		x.catalog.Flags(),
		x.policy.Flags(),
		x.bigQuery.Flags(),
		x.storage.Flags(),
	)
}

func (x *sinks) newUseCase(ctx context.Context, options ...infra.Option) (*usecase.UseCase, error) {
	scanner, err := x.catalog.NewScanner()
	if err != nil {
		return nil, err
	}

	if bqClient, err := x.bigQuery.NewClient(ctx); err != nil {
		return nil, err
	} else if bqClient != nil {
		options = append(options, infra.WithBigQuery(bqClient))
	}

	if storageClient, err := x.storage.NewClient(ctx); err != nil {
		return nil, err
	} else if storageClient != nil {
		options = append(options, infra.WithStorage(storageClient))
	}

	if policyClient, err := x.policy.NewClient(); err != nil {
		return nil, err
	} else if policyClient != nil {
		options = append(options, infra.WithPolicy(policyClient))
	}

	storageFormat, err := x.storage.Format()
	if err != nil {
		return nil, err
	}

	return usecase.New(infra.New(options...),
		usecase.WithScanner(scanner),
		usecase.WithStoragePrefix(x.storage.Prefix()),
		usecase.WithStorageFormat(storageFormat),
	), nil
}

func (x *sinks) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("Catalog", &x.catalog),
		slog.Any("Policy", &x.policy),
		slog.Any("BigQuery", &x.bigQuery),
		slog.Any("Storage", &x.storage),
	)
}

// analyzeEnv has options of analysis of a remote repository.
type analyzeEnv struct {
	github config.GitHub
	report config.Report
	fetch  config.Fetch
	sinks  sinks
}

func (x *analyzeEnv) Flags() []cli.Flag {
	return slice.Flatten(
		x.github.Flags(),
		x.report.Flags(),
		x.fetch.Flags(),
		x.sinks.Flags(),
	)
}

func runAnalyze(ctx context.Context, c *cli.Command, env *analyzeEnv, stdout io.Writer) error {
	format, err := env.report.Format()
	if err != nil {
		return err
	}
	detail, err := env.report.Detail()
	if err != nil {
		return err
	}
	fetchOpt, err := env.fetch.Options()
	if err != nil {
		return err
	}

	if c.Args().Len() != 1 {
		return goerr.Wrap(types.ErrInvalidOption, "exactly one repository URL is required",
			goerr.V("args", c.Args().Slice()))
	}

	repo, err := model.ParseRepositoryURL(c.Args().First(), env.github.Hosts()...)
	if err != nil {
		return err
	}
	if ref := env.fetch.Ref(); ref != "" {
		repo.Ref = ref
	}

	logging.Default().Info("starting analysis",
		slog.String("repository", repo.String()),
		slog.Any("GitHub", env.github),
		slog.Any("Report", &env.report),
		slog.Any("Fetch", &env.fetch),
		slog.Any("Sinks", &env.sinks),
	)

	gh, err := env.github.NewClient()
	if err != nil {
		return err
	}

	uc, err := env.sinks.newUseCase(ctx, infra.WithGitHub(gh))
	if err != nil {
		return err
	}

	r, err := uc.AnalyzeRepository(ctx, &model.AnalyzeRepositoryInput{
		Repository: repo,
		Detail:     detail,
		Fetch:      fetchOpt,
	})
	if err != nil {
		return err
	}

	return publish(ctx, uc, r, &env.report, format, stdout)
}

// publish writes the report and passes it to configured sinks and the policy gate.
func publish(ctx context.Context, uc *usecase.UseCase, r *model.AnalysisReport, cfg *config.Report, format types.OutputFormat, stdout io.Writer) error {
	w, err := cfg.Open(stdout)
	if err != nil {
		return err
	}
	defer safe.Close(w)

	// color.NoColor is set when stdout is not a terminal or NO_COLOR is set
	if err := report.Render(w, r, format, report.WithColor(cfg.ToStdout() && !color.NoColor)); err != nil {
		return err
	}

	if err := uc.ExportReport(ctx, r); err != nil {
		return err
	}

	result, err := uc.EvaluatePolicy(ctx, r)
	if err != nil {
		if errors.Is(err, types.ErrPolicyViolation) && result != nil {
			for _, v := range result.Fail {
				logging.Default().Warn("policy violation", "rule", v.Rule, "message", v.Message)
			}
		}
		return err
	}

	return nil
}
