// Command worldsim runs and inspects living-world simulations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "worldsim",
		Short: "Run and inspect living-world simulations",
		Long:  "worldsim drives the living-world tick kernel headlessly, serves its live status over HTTP, and inspects saved WorldFile snapshots.",
	}

	root.AddCommand(runCmd(), serveCmd(), snapshotCmd())
	return root
}
