package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order one sales order row from the input table.
type Order struct {
	// ID is the source order identifier.
	ID string
	// PurchaseTime is the order purchase timestamp.
	PurchaseTime time.Time
	// Amount is the order amount in the native currency.
	Amount decimal.Decimal
}

// Month returns the month key the order falls into.
func (o *Order) Month() MonthKey {
	return MonthKeyOf(o.PurchaseTime)
}
