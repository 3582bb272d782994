// Package loader reads order tables from local CSV and XLSX files.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/salesfx/internal/domain"
)

// ErrMissingInput reports that the input file does not exist.
var ErrMissingInput = errors.New("input file does not exist")

// MalformedRowError reports an input row that cannot be parsed into an order.
type MalformedRowError struct {
	Line int
	Err  error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: %v", e.Line, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// Columns recognized in the input header. The amount is taken from the
// price column, falling back to payment_value when price is absent.
const (
	colOrderID      = "order_id"
	colTimestamp    = "order_purchase_timestamp"
	colPrice        = "price"
	colPaymentValue = "payment_value"
)

var timestampLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// Result carries the loaded orders and the resolved amount column name.
type Result struct {
	Orders       []domain.Order
	AmountColumn string
}

// Load reads the orders table at path, dispatching on the file extension.
// XLSX files are read from their first sheet, everything else is parsed
// as CSV.
func Load(path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrMissingInput, "path %s", path)
		}
		return nil, errors.Wrap(err, "stat input file")
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path)
	}
	return loadCSV(path)
}

type columnLayout struct {
	id         int
	timestamp  int
	amount     int
	amountName string
}

func resolveColumns(header []string) (columnLayout, error) {
	idIdx, tsIdx, priceIdx, paymentIdx := -1, -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case colOrderID:
			idIdx = i
		case colTimestamp:
			tsIdx = i
		case colPrice:
			priceIdx = i
		case colPaymentValue:
			paymentIdx = i
		}
	}

	if idIdx == -1 {
		return columnLayout{}, errors.Errorf("input header misses required column %q", colOrderID)
	}
	if tsIdx == -1 {
		return columnLayout{}, errors.Errorf("input header misses required column %q", colTimestamp)
	}

	amountIdx, amountName := priceIdx, colPrice
	if priceIdx == -1 {
		amountIdx, amountName = paymentIdx, colPaymentValue
	}
	if amountIdx == -1 {
		return columnLayout{}, errors.Errorf("input header misses an amount column (%q or %q)", colPrice, colPaymentValue)
	}

	return columnLayout{id: idIdx, timestamp: tsIdx, amount: amountIdx, amountName: amountName}, nil
}

func parseOrder(record []string, cols columnLayout) (domain.Order, error) {
	need := cols.id
	if cols.timestamp > need {
		need = cols.timestamp
	}
	if cols.amount > need {
		need = cols.amount
	}
	if len(record) <= need {
		return domain.Order{}, errors.Errorf("row has %d fields, want at least %d", len(record), need+1)
	}

	id := strings.TrimSpace(record[cols.id])
	if id == "" {
		return domain.Order{}, errors.New("empty order_id")
	}

	ts, err := parseTimestamp(strings.TrimSpace(record[cols.timestamp]))
	if err != nil {
		return domain.Order{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[cols.amount]))
	if err != nil {
		return domain.Order{}, errors.Wrapf(err, "invalid amount %q", record[cols.amount])
	}

	return domain.Order{ID: id, PurchaseTime: ts, Amount: amount}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid timestamp %q", value)
}
