package domain

import "github.com/shopspring/decimal"

// MonthlyTotal one month's aggregated sales amount.
type MonthlyTotal struct {
	Month MonthKey
	Total decimal.Decimal
}
