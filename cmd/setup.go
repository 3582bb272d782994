package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vadiminshakov/salesfx/internal/setup"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setup.RunTUI()
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
