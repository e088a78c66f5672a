package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ecocoder/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func rulesCommand(stdout io.Writer) *cli.Command {
	var catalog config.Catalog

	return &cli.Command{
		Name:  "rules",
		Usage: "Show enabled detection rules",
		Flags: catalog.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			s, err := catalog.NewScanner()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "# catalog %s\n", s.Version())
			fmt.Fprintln(w, "ID\tSEVERITY\tTIER\tCATEGORY\tLANGUAGES\tTITLE")
			for _, r := range s.Rules() {
				langs := "*"
				if len(r.Languages) > 0 {
					langs = strings.Join(r.Languages, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Severity, r.Tier, r.Category, langs, r.Title)
			}
			if err := w.Flush(); err != nil {
				return goerr.Wrap(err, "failed to write rules")
			}
			return nil
		},
	}
}
