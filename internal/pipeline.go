package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/salesfx/config"
	"github.com/vadiminshakov/salesfx/internal/domain"
	"github.com/vadiminshakov/salesfx/internal/loader"
	"github.com/vadiminshakov/salesfx/internal/services/aggregate"
	"github.com/vadiminshakov/salesfx/internal/services/enrich"
	"go.uber.org/zap"
)

// RateResolver resolves conversion rates for the given months.
type RateResolver interface {
	Resolve(ctx context.Context, months []domain.MonthKey) (domain.RateTable, error)
}

// ReportWriter serializes pipeline results.
type ReportWriter interface {
	WriteEnriched(rows []domain.EnrichedOrder, amountColumn string) (string, error)
	WriteMonthlyNative(totals []domain.MonthlyTotal) (string, error)
	WriteMonthlyConverted(totals []domain.MonthlyTotal) (string, error)
}

// Uploader ships output files to remote storage.
type Uploader interface {
	UploadFiles(ctx context.Context, paths []string) error
}

// Journal records finished pipeline runs.
type Journal interface {
	Append(record domain.RunRecord) error
}

// Pipeline represents a single ETL run over one orders file: load, resolve
// rates, enrich, aggregate, write. Uploader and Journal are optional.
type Pipeline struct {
	Resolver RateResolver
	Writer   ReportWriter
	Uploader Uploader
	Journal  Journal
	Config   config.Config
}

// NewPipeline creates a pipeline instance
func NewPipeline(conf config.Config, resolver RateResolver, writer ReportWriter) *Pipeline {
	return &Pipeline{
		Resolver: resolver,
		Writer:   writer,
		Config:   conf,
	}
}

// Run executes the pipeline once and journals the outcome. Failed runs are
// journaled too; journal write failures are logged and never fail the run.
func (p *Pipeline) Run(ctx context.Context, logger *zap.Logger) error {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	record := domain.RunRecord{
		RunID:     runID,
		StartedAt: time.Now(),
		InputPath: p.Config.InputPath,
		Status:    domain.RunStatusOK,
	}

	err := p.run(ctx, logger, &record)
	record.FinishedAt = time.Now()
	if err != nil {
		record.Status = domain.RunStatusFailed
		record.Error = err.Error()
	}

	if p.Journal != nil {
		if journalErr := p.Journal.Append(record); journalErr != nil {
			logger.Warn("failed to journal run", zap.Error(journalErr))
		}
	}

	return err
}

func (p *Pipeline) run(ctx context.Context, logger *zap.Logger, record *domain.RunRecord) error {
	logger.Info("pipeline started",
		zap.String("input", p.Config.InputPath),
		zap.String("pair", p.Config.Pair.String()))

	loaded, err := loader.Load(p.Config.InputPath)
	if err != nil {
		return errors.Wrap(err, "load orders")
	}
	record.Orders = len(loaded.Orders)
	logger.Info("orders loaded",
		zap.Int("count", len(loaded.Orders)),
		zap.String("amount_column", loaded.AmountColumn))

	months := distinctMonths(loaded.Orders)
	record.Months = len(months)

	table, err := p.Resolver.Resolve(ctx, months)
	if err != nil {
		return errors.Wrap(err, "resolve rates")
	}
	record.MonthsUnavailable = countUnavailable(table, months)

	enriched := enrich.Enrich(loaded.Orders, table)
	if missing := enrich.CountMissingRate(enriched); missing > 0 {
		logger.Warn("orders without conversion rate", zap.Int("count", missing))
	}

	native := aggregate.NativeTotals(enriched)
	converted := aggregate.ConvertedTotals(enriched, p.Config.FallbackRate)

	outputs := make([]string, 0, 3)

	path, err := p.Writer.WriteEnriched(enriched, loaded.AmountColumn)
	if err != nil {
		return errors.Wrap(err, "write enriched orders")
	}
	outputs = append(outputs, path)

	path, err = p.Writer.WriteMonthlyNative(native)
	if err != nil {
		return errors.Wrap(err, "write native monthly sales")
	}
	outputs = append(outputs, path)

	path, err = p.Writer.WriteMonthlyConverted(converted)
	if err != nil {
		return errors.Wrap(err, "write converted monthly sales")
	}
	outputs = append(outputs, path)

	record.Outputs = outputs

	if p.Uploader != nil {
		if err := p.Uploader.UploadFiles(ctx, outputs); err != nil {
			return errors.Wrap(err, "upload outputs")
		}
	}

	logger.Info("pipeline finished",
		zap.Int("orders", record.Orders),
		zap.Int("months", record.Months),
		zap.Int("months_unavailable", record.MonthsUnavailable),
		zap.Strings("outputs", outputs),
		zap.Duration("took", time.Since(record.StartedAt)))

	return nil
}

func distinctMonths(orders []domain.Order) []domain.MonthKey {
	seen := make(map[domain.MonthKey]struct{}, len(orders))
	months := make([]domain.MonthKey, 0)
	for _, order := range orders {
		month := order.Month()
		if _, ok := seen[month]; ok {
			continue
		}
		seen[month] = struct{}{}
		months = append(months, month)
	}
	domain.SortMonthKeys(months)
	return months
}

func countUnavailable(table domain.RateTable, months []domain.MonthKey) int {
	count := 0
	for _, month := range months {
		if table[month] == nil {
			count++
		}
	}
	return count
}
