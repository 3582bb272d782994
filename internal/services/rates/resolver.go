// Package rates resolves monthly conversion rates through a persistent cache
// and an external API.
package rates

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/salesfx/internal/domain"
	"go.uber.org/zap"
)

// Source fetches a conversion rate for a calendar date.
type Source interface {
	HistoricalRate(ctx context.Context, date time.Time, pair domain.Pair) (decimal.Decimal, error)
}

// Cache persists resolved rates between runs.
type Cache interface {
	Load() (domain.RateTable, error)
	Save(table domain.RateTable) error
}

// Resolver resolves one conversion rate per distinct month, consulting the
// cache before the external API. Lookups never retry: a failed month is
// recorded as unavailable and skipped on subsequent runs.
type Resolver struct {
	source Source
	cache  Cache
	pair   domain.Pair
	logger *zap.Logger
}

// NewResolver creates a rate resolver for the given currency pair.
func NewResolver(source Source, cache Cache, pair domain.Pair, logger *zap.Logger) *Resolver {
	return &Resolver{source: source, cache: cache, pair: pair, logger: logger}
}

// Resolve returns a rate table covering every given month. Cached months,
// including cached unavailable markers, are reused without a new lookup; the
// remaining ones are fetched once each at the first day of the month, in
// ascending order. The merged table replaces the cache contents on disk.
func (r *Resolver) Resolve(ctx context.Context, months []domain.MonthKey) (domain.RateTable, error) {
	table, err := r.cache.Load()
	if err != nil {
		r.logger.Warn("rate cache unreadable, starting with empty cache", zap.Error(err))
		table = domain.RateTable{}
	}

	pending := make([]domain.MonthKey, 0, len(months))
	for _, month := range months {
		if _, ok := table[month]; !ok {
			pending = append(pending, month)
		}
	}
	domain.SortMonthKeys(pending)

	for _, month := range pending {
		if _, ok := table[month]; ok {
			continue
		}

		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "rate resolution interrupted")
		}

		rate, err := r.source.HistoricalRate(ctx, month.FirstDay(), r.pair)
		if err != nil {
			r.logger.Warn("rate lookup failed, month recorded as unavailable",
				zap.String("month", month.String()),
				zap.String("pair", r.pair.String()),
				zap.Error(err))
			table[month] = nil
			continue
		}

		r.logger.Info("rate resolved",
			zap.String("month", month.String()),
			zap.String("pair", r.pair.String()),
			zap.String("rate", rate.String()))
		table[month] = &rate
	}

	if err := r.cache.Save(table); err != nil {
		return nil, errors.Wrap(err, "save rate cache")
	}

	return table, nil
}
