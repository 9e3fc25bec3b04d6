package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/edgesentry/edgesentry/pkg/sandbox"
)

// Version is the semantic version reported by the CLI. It defaults to
// sandbox.ServiceVersion, the prefix every Version Tag is stamped with;
// overriding it with build flags changes only what this command prints.
var Version = sandbox.ServiceVersion

// GitCommit is the git commit hash (set by build flags).
var GitCommit = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("edgesentry %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		fmt.Printf("Go Version: %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
