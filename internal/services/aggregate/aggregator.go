// Package aggregate reduces enriched orders into monthly sales totals.
package aggregate

import (
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/salesfx/internal/domain"
)

// NativeTotals sums order amounts per month in the native currency. Every
// month present in the input appears in the result, sorted ascending.
func NativeTotals(rows []domain.EnrichedOrder) []domain.MonthlyTotal {
	totals := make(map[domain.MonthKey]decimal.Decimal)
	for _, row := range rows {
		month := row.Month()
		totals[month] = totals[month].Add(row.Amount)
	}
	return sortedTotals(totals)
}

// ConvertedTotals sums converted amounts per month in the quote currency.
// Months without a resolved rate fall back to the native total multiplied
// by fallbackRate.
func ConvertedTotals(rows []domain.EnrichedOrder, fallbackRate decimal.Decimal) []domain.MonthlyTotal {
	converted := make(map[domain.MonthKey]decimal.Decimal)
	native := make(map[domain.MonthKey]decimal.Decimal)
	hasRate := make(map[domain.MonthKey]bool)

	for _, row := range rows {
		month := row.Month()
		native[month] = native[month].Add(row.Amount)
		if row.Converted != nil {
			converted[month] = converted[month].Add(*row.Converted)
			hasRate[month] = true
		}
	}

	totals := make(map[domain.MonthKey]decimal.Decimal, len(native))
	for month, total := range native {
		if hasRate[month] {
			totals[month] = converted[month]
			continue
		}
		totals[month] = total.Mul(fallbackRate)
	}
	return sortedTotals(totals)
}

func sortedTotals(totals map[domain.MonthKey]decimal.Decimal) []domain.MonthlyTotal {
	months := make([]domain.MonthKey, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	domain.SortMonthKeys(months)

	result := make([]domain.MonthlyTotal, 0, len(months))
	for _, month := range months {
		result = append(result, domain.MonthlyTotal{Month: month, Total: totals[month]})
	}
	return result
}
