package domain

import "github.com/shopspring/decimal"

// RateTable maps month keys to resolved conversion rates. A nil value marks
// a month that was looked up and has no rate available; a missing key means
// the month was never looked up.
type RateTable map[MonthKey]*decimal.Decimal

// Months returns all month keys present in the table, sorted ascending.
func (t RateTable) Months() []MonthKey {
	months := make([]MonthKey, 0, len(t))
	for month := range t {
		months = append(months, month)
	}
	SortMonthKeys(months)
	return months
}

// EnrichedOrder is an order joined with the conversion rate of its month.
// Rate and Converted are nil when the month has no resolved rate.
type EnrichedOrder struct {
	Order
	Rate      *decimal.Decimal
	Converted *decimal.Decimal
}
