package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "test_loader_*")
	require.NoError(t, err, "Failed to create temp directory")

	t.Cleanup(func() {
		os.RemoveAll(tempDir)
	})

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(tempDir, "orders.xlsx")
	require.NoError(t, f.SaveAs(path))

	return path
}

func TestLoad_XLSX(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"order_id", "order_purchase_timestamp", "price"},
		{"o1", "2017-05-03 10:15:00", "100.00"},
		{"o2", "2017-06-01 09:30:00", "200.00"},
	})

	res, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "price", res.AmountColumn)
	require.Len(t, res.Orders, 2)

	require.Equal(t, "o1", res.Orders[0].ID)
	require.Equal(t, time.Date(2017, time.May, 3, 10, 15, 0, 0, time.UTC), res.Orders[0].PurchaseTime)
	require.True(t, res.Orders[0].Amount.Equal(mustDecimalFromString("100.00")))
	require.Equal(t, "o2", res.Orders[1].ID)
}

func TestLoad_XLSXSkipsEmptyRows(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"order_id", "order_purchase_timestamp", "price"},
		{"o1", "2017-05-03 10:15:00", "100.00"},
		{"", "", ""},
		{"o2", "2017-06-01 09:30:00", "200.00"},
	})

	res, err := Load(path)
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)
	require.Equal(t, "o2", res.Orders[1].ID)
}

func TestLoad_XLSXMalformedRow(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"order_id", "order_purchase_timestamp", "price"},
		{"o1", "2017-05-03 10:15:00", "100.00"},
		{"o2", "not-a-date", "50.00"},
	})

	_, err := Load(path)
	require.Error(t, err)

	var malformed *MalformedRowError
	require.True(t, errors.As(err, &malformed), "expected MalformedRowError, got %v", err)
	require.Equal(t, 3, malformed.Line)
}
