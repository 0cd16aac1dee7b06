// Command qsynth synthesizes quantum phase oracles and serves the progress API.
package main

import (
	"os"

	"github.com/roach88/qsynth/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
