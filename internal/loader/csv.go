package loader

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/salesfx/internal/domain"
)

func loadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("input file is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "read input header")
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var orders []domain.Order
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedRowError{Line: line, Err: err}
		}

		order, err := parseOrder(record, cols)
		if err != nil {
			return nil, &MalformedRowError{Line: line, Err: err}
		}
		orders = append(orders, order)
	}

	return &Result{Orders: orders, AmountColumn: cols.amountName}, nil
}
