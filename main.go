package main

import (
	"fmt"
	"os"

	"github.com/secmon-lab/ecocoder/pkg/cli"
)

func main() {
	if err := cli.New().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ecocoder: %s\n", err.Error())
		os.Exit(cli.ExitCode(err))
	}
}
