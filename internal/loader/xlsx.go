package loader

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/salesfx/internal/domain"
	"github.com/xuri/excelize/v2"
)

func loadXLSX(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, "read xlsx rows")
	}
	if len(rows) == 0 {
		return nil, errors.New("input file is empty")
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows)-1)
	for i, row := range rows[1:] {
		// spreadsheets commonly carry phantom empty rows at the end
		if isRowEmpty(row) {
			continue
		}

		order, err := parseOrder(row, cols)
		if err != nil {
			return nil, &MalformedRowError{Line: i + 2, Err: err}
		}
		orders = append(orders, order)
	}

	return &Result{Orders: orders, AmountColumn: cols.amountName}, nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
