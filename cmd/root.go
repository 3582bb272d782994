// Package cmd wires the salesfx command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "salesfx",
	Short: "Orders ETL with historical FX enrichment",
	Long: `salesfx loads an orders table from a local CSV or XLSX file, enriches
each order with the historical conversion rate of its month, aggregates
monthly sales totals in both currencies and writes the results as CSV files.

Rates are fetched from an exchangerate.host compatible API once per distinct
month and cached on disk, so repeated runs do not query the API again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to yaml config")
}
