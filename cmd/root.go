package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "doctrack",
	Short: "Campus document approval and tracking server",
	Long: `Doctrack is the REST API server for campus document approval
and tracking. Documents move through an institutional review ladder
(instructor, dean, vice-presidential branch, president, registrar,
archives) with an append-only history ledger, notifications and
administrative reporting.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for tests.
func GetRootCmd() *cobra.Command {
	return rootCmd
}
