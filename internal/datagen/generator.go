// Package datagen writes deterministic sample order datasets for local runs.
package datagen

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

const (
	sampleFileName = "orders_sample.csv"
	largeFileName  = "orders_large.csv"

	sampleTimestamp = "2020-01-01 10:00:00"
)

var sampleOrders = []struct {
	id    string
	price string
}{
	{"o1", "10"},
	{"o2", "20"},
	{"o3", "30"},
	{"o4", "5"},
	{"o5", "7.5"},
	{"o6", "12"},
	{"o7", "6"},
	{"o8", "8"},
	{"o9", "15"},
	{"o10", "3"},
}

// WriteSample writes the small fixed dataset into dir and returns its path.
func WriteSample(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create dataset dir")
	}

	path := filepath.Join(dir, sampleFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create sample dataset file")
	}

	cw := csv.NewWriter(f)
	records := make([][]string, 0, len(sampleOrders)+1)
	records = append(records, []string{"order_id", "order_purchase_timestamp", "price"})
	for _, order := range sampleOrders {
		records = append(records, []string{order.id, sampleTimestamp, order.price})
	}

	if err := cw.WriteAll(records); err != nil {
		f.Close()
		return "", errors.Wrap(err, "write sample dataset")
	}

	return path, errors.Wrap(f.Close(), "close sample dataset file")
}

// WriteLarge repeats the sample block, tagging each repetition with a rep
// counter column, until the file reaches at least targetSize bytes.
func WriteLarge(dir string, targetSize int64) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create dataset dir")
	}

	path := filepath.Join(dir, largeFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create large dataset file")
	}

	buffered := bufio.NewWriter(f)
	counter := &countingWriter{w: buffered}
	cw := csv.NewWriter(counter)

	if err := cw.Write([]string{"order_id", "order_purchase_timestamp", "price", "rep"}); err != nil {
		f.Close()
		return "", errors.Wrap(err, "write large dataset header")
	}

	for rep := 0; ; rep++ {
		for _, order := range sampleOrders {
			if err := cw.Write([]string{order.id, sampleTimestamp, order.price, strconv.Itoa(rep)}); err != nil {
				f.Close()
				return "", errors.Wrap(err, "write large dataset row")
			}
		}

		// flush per block so the size check sees what was produced
		cw.Flush()
		if err := cw.Error(); err != nil {
			f.Close()
			return "", errors.Wrap(err, "flush large dataset")
		}
		if counter.n >= targetSize {
			break
		}
	}

	if err := buffered.Flush(); err != nil {
		f.Close()
		return "", errors.Wrap(err, "flush large dataset file")
	}

	return path, errors.Wrap(f.Close(), "close large dataset file")
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
