package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "edgesentry",
	Short: "edgesentry - WASM-sandboxed edge policy enforcement",
	Long: `edgesentry evaluates access-control requests against a WebAssembly
policy artifact inside a fuel-metered sandbox, and hot-reloads the
artifact when it changes on disk without dropping in-flight requests.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
}
