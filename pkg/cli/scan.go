package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/ecocoder/pkg/cli/config"
	"github.com/secmon-lab/ecocoder/pkg/domain/model"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func scanCommand(stdout io.Writer) *cli.Command {
	var (
		dir       string
		repo      model.RepositoryRef
		reportCfg config.Report
		fetch     config.Fetch
		sinkCfg   sinks
	)

	return &cli.Command{
		Name:    "scan",
		Aliases: []string{"sc"},
		Usage:   "Analyze local directory",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Usage:       "Path to directory to scan",
				Value:       ".",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "github-owner",
				Usage:       "Repository owner in the report (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("ECOCODER_GITHUB_OWNER"),
				Destination: &repo.Owner,
			},
			&cli.StringFlag{
				Name:        "github-repo",
				Usage:       "Repository name in the report (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("ECOCODER_GITHUB_REPO"),
				Destination: &repo.Name,
			},
		}, reportCfg.Flags(), fetch.FilterFlags(), sinkCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			format, err := reportCfg.Format()
			if err != nil {
				return err
			}
			detail, err := reportCfg.Detail()
			if err != nil {
				return err
			}
			fetchOpt, err := fetch.Options()
			if err != nil {
				return err
			}

			if err := DetectRepository(dir, &repo); err != nil {
				logging.Default().Warn("failed to detect repository from git", "error", err)
			}

			logging.Default().Info("starting scan",
				slog.String("dir", dir),
				slog.String("repository", repo.String()),
				slog.Any("Report", &reportCfg),
				slog.Any("Fetch", &fetch),
				slog.Any("Sinks", &sinkCfg),
			)

			uc, err := sinkCfg.newUseCase(ctx)
			if err != nil {
				return err
			}

			r, err := uc.AnalyzeDirectory(ctx, &model.AnalyzeDirectoryInput{
				Dir:        dir,
				Repository: repo,
				Detail:     detail,
				Fetch:      fetchOpt,
			})
			if err != nil {
				return err
			}

			return publish(ctx, uc, r, &reportCfg, format, stdout)
		},
	}
}
