package cmd

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vadiminshakov/salesfx/config"
	"github.com/vadiminshakov/salesfx/internal"
	"github.com/vadiminshakov/salesfx/internal/clients"
	"github.com/vadiminshakov/salesfx/internal/services/rates"
	"github.com/vadiminshakov/salesfx/internal/services/report"
	"github.com/vadiminshakov/salesfx/internal/services/upload"
	"github.com/vadiminshakov/salesfx/internal/storage/ratecache"
	"github.com/vadiminshakov/salesfx/internal/storage/runjournal"
)

var (
	inputFlag    string
	outputFlag   string
	s3BucketFlag string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the pipeline once",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if inputFlag != "" {
			conf.InputPath = inputFlag
		}
		if outputFlag != "" {
			conf.OutputDir = outputFlag
		}
		if s3BucketFlag != "" {
			conf.S3Bucket = s3BucketFlag
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer logger.Sync()

		pipeline, journal, err := buildPipeline(conf, logger)
		if err != nil {
			return err
		}
		if journal != nil {
			defer journal.Close()
		}

		return pipeline.Run(cmd.Context(), logger)
	},
}

func buildPipeline(conf config.Config, logger *zap.Logger) (*internal.Pipeline, *runjournal.WALStore, error) {
	cache, err := ratecache.NewStore(conf.OutputDir)
	if err != nil {
		return nil, nil, err
	}

	source := clients.NewExchangeRateClient(conf.RatesAPIURL, conf.RatesAPIKey, conf.RequestTimeout)
	resolver := rates.NewResolver(source, cache, conf.Pair, logger)

	writer, err := report.NewWriter(conf.OutputDir, conf.Pair)
	if err != nil {
		return nil, nil, err
	}

	pipeline := internal.NewPipeline(conf, resolver, writer)

	if conf.S3Bucket != "" {
		sess, err := session.NewSession()
		if err != nil {
			return nil, nil, errors.Wrap(err, "create AWS session")
		}
		pipeline.Uploader = upload.NewUploader(s3.New(sess), conf.S3Bucket, conf.S3Prefix, logger)
	}

	// journal failures only degrade the audit trail, the run proceeds
	journal, err := runjournal.NewWALStore(conf.JournalDir)
	if err != nil {
		logger.Warn("run journal unavailable", zap.Error(err))
		return pipeline, nil, nil
	}
	pipeline.Journal = journal

	return pipeline, journal, nil
}

func init() {
	runCmd.Flags().StringVar(&inputFlag, "input", "", "path to the orders file (overrides config)")
	runCmd.Flags().StringVar(&outputFlag, "output", "", "output directory (overrides config)")
	runCmd.Flags().StringVar(&s3BucketFlag, "s3-bucket", "", "S3 bucket for output upload (overrides config)")
	rootCmd.AddCommand(runCmd)
}
