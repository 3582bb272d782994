// Package enrich joins orders with the conversion rates of their months.
package enrich

import "github.com/vadiminshakov/salesfx/internal/domain"

// Enrich returns one enriched row per order, preserving input order. Orders
// in months without a resolved rate keep nil rate and converted amount; no
// fallback is applied here.
func Enrich(orders []domain.Order, rates domain.RateTable) []domain.EnrichedOrder {
	enriched := make([]domain.EnrichedOrder, 0, len(orders))
	for _, order := range orders {
		row := domain.EnrichedOrder{Order: order}
		if rate := rates[order.Month()]; rate != nil {
			converted := order.Amount.Mul(*rate)
			row.Rate = rate
			row.Converted = &converted
		}
		enriched = append(enriched, row)
	}
	return enriched
}

// CountMissingRate returns the number of rows without a converted amount.
func CountMissingRate(rows []domain.EnrichedOrder) int {
	count := 0
	for _, row := range rows {
		if row.Converted == nil {
			count++
		}
	}
	return count
}
