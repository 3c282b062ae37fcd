package main

import (
	"os"

	"github.com/ironsheep/image-vectorize/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, BuildTime, GitCommit)
	if err := cli.Execute(); err != nil {
		// cobra has already printed the error.
		os.Exit(1)
	}
}
