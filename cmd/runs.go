package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vadiminshakov/salesfx/config"
	"github.com/vadiminshakov/salesfx/internal/storage/runjournal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Print the run journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		journal, err := runjournal.NewWALStore(conf.JournalDir)
		if err != nil {
			return err
		}
		defer journal.Close()

		records, err := journal.Runs()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no runs recorded yet")
			return nil
		}

		for _, record := range records {
			line := fmt.Sprintf("%s  %s  %-6s  orders=%d months=%d unavailable=%d",
				record.StartedAt.Format(time.RFC3339), record.RunID, record.Status,
				record.Orders, record.Months, record.MonthsUnavailable)
			if record.Error != "" {
				line += "  error=" + record.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
