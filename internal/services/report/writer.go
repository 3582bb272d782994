// Package report serializes pipeline results into CSV files.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/salesfx/internal/domain"
)

const enrichedFileName = "enriched_orders.csv"

// Writer writes pipeline outputs into a single directory. Money cells are
// rendered with two decimal places, rate cells keep full precision.
type Writer struct {
	dir  string
	pair domain.Pair
}

// NewWriter creates a report writer for the output directory.
func NewWriter(dir string, pair domain.Pair) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output dir")
	}
	return &Writer{dir: dir, pair: pair}, nil
}

// WriteEnriched writes the enriched order rows. amountColumn names the
// amount column as found in the input header. Rate and converted cells stay
// empty for months without a resolved rate.
func (w *Writer) WriteEnriched(rows []domain.EnrichedOrder, amountColumn string) (string, error) {
	path := filepath.Join(w.dir, enrichedFileName)

	base := strings.ToLower(w.pair.From)
	quote := strings.ToLower(w.pair.To)
	rateColumn := fmt.Sprintf("%s_to_%s_rate", base, quote)
	convertedColumn := fmt.Sprintf("payment_%s", quote)

	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"order_id", "order_purchase_timestamp", "month", amountColumn, rateColumn, convertedColumn})
	for _, row := range rows {
		rate, converted := "", ""
		if row.Rate != nil {
			rate = row.Rate.String()
		}
		if row.Converted != nil {
			converted = row.Converted.StringFixed(2)
		}
		records = append(records, []string{
			row.ID,
			row.PurchaseTime.Format("2006-01-02 15:04:05"),
			row.Month().String(),
			row.Amount.StringFixed(2),
			rate,
			converted,
		})
	}

	return path, w.writeCSV(path, records)
}

// WriteMonthlyNative writes the native-currency monthly sales table.
func (w *Writer) WriteMonthlyNative(totals []domain.MonthlyTotal) (string, error) {
	base := strings.ToLower(w.pair.From)
	path := filepath.Join(w.dir, fmt.Sprintf("monthly_sales_%s.csv", base))

	records := make([][]string, 0, len(totals)+1)
	records = append(records, []string{"month", fmt.Sprintf("monthly_sales_%s", base)})
	for _, total := range totals {
		records = append(records, []string{total.Month.String(), total.Total.StringFixed(2)})
	}

	return path, w.writeCSV(path, records)
}

// WriteMonthlyConverted writes the quote-currency monthly sales table built
// with the fixed fallback rate for months without a resolved rate.
func (w *Writer) WriteMonthlyConverted(totals []domain.MonthlyTotal) (string, error) {
	quote := strings.ToLower(w.pair.To)
	path := filepath.Join(w.dir, fmt.Sprintf("monthly_sales_%s_fixed_rate.csv", quote))

	records := make([][]string, 0, len(totals)+1)
	records = append(records, []string{"month", fmt.Sprintf("monthly_sales_%s_fixed_rate", quote)})
	for _, total := range totals {
		records = append(records, []string{total.Month.String(), total.Total.StringFixed(2)})
	}

	return path, w.writeCSV(path, records)
}

func (w *Writer) writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}

	if err := csv.NewWriter(f).WriteAll(records); err != nil {
		f.Close()
		return errors.Wrap(err, "write csv records")
	}

	return errors.Wrap(f.Close(), "close output file")
}
