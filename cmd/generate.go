package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vadiminshakov/salesfx/internal/datagen"
)

var (
	genDir        string
	genLarge      bool
	genTargetSize int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a deterministic sample orders dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genLarge {
			path, err := datagen.WriteLarge(genDir, genTargetSize)
			if err != nil {
				return err
			}
			fmt.Printf("large dataset written to %s\n", path)
			return nil
		}

		path, err := datagen.WriteSample(genDir)
		if err != nil {
			return err
		}
		fmt.Printf("sample dataset written to %s\n", path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genDir, "dir", "data", "directory for generated datasets")
	generateCmd.Flags().BoolVar(&genLarge, "large", false, "repeat the sample block until the target size is reached")
	generateCmd.Flags().Int64Var(&genTargetSize, "target-size", 100*1024*1024, "target size in bytes for --large")
	rootCmd.AddCommand(generateCmd)
}
