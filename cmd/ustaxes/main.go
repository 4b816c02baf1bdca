package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ustaxes",
	Short: "US personal income tax calculator",
	Long: `ustaxes computes a US federal Form 1040 (with Schedules A, B and D)
and a resident-state return (NY, NJ or PA) for the 2024 and 2025 tax
years.

The calc command runs a one-shot calculation from a YAML return file;
the serve command starts the HTTP API over Postgres.`,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
