package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/ecocoder/pkg/cli/config"
	"github.com/secmon-lab/ecocoder/pkg/controller/server"
	"github.com/secmon-lab/ecocoder/pkg/domain/types"
	"github.com/secmon-lab/ecocoder/pkg/infra"
	"github.com/secmon-lab/ecocoder/pkg/utils/logging"

	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr   string
		detail string

		github  config.GitHub
		webhook config.Webhook
		fetch   config.Fetch
		sinkCfg sinks
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("ECOCODER_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "detail",
			Usage:       "Detail level of reports created by webhook [basic|detailed|comprehensive]",
			Value:       string(types.DetailBasic),
			Sources:     cli.EnvVars("ECOCODER_DETAIL"),
			Destination: &detail,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			github.Flags(),
			webhook.Flags(),
			fetch.Flags(),
			sinkCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Detail", detail),
				slog.Any("GitHub", github),
				slog.Any("Webhook", webhook),
				slog.Any("Fetch", &fetch),
				slog.Any("Sinks", &sinkCfg),
			)

			if err := webhook.Validate(); err != nil {
				return err
			}
			detailLevel, err := types.ParseDetailLevel(detail)
			if err != nil {
				return err
			}
			fetchOpt, err := fetch.Options()
			if err != nil {
				return err
			}

			gh, err := github.NewClient()
			if err != nil {
				return err
			}

			uc, err := sinkCfg.newUseCase(ctx, infra.WithGitHub(gh))
			if err != nil {
				return err
			}

			s := server.New(uc,
				server.WithGitHubSecret(webhook.Secret()),
				server.WithDetail(detailLevel),
				server.WithFetchOptions(fetchOpt),
			)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      5 * time.Minute,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
