package enrich

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/salesfx/internal/domain"
)

func testOrder(id string, year int, month time.Month, amount string) domain.Order {
	return domain.Order{
		ID:           id,
		PurchaseTime: time.Date(year, month, 15, 12, 0, 0, 0, time.UTC),
		Amount:       mustDecimalFromString(amount),
	}
}

func mustDecimalFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEnrich_ConvertsWithMonthRate(t *testing.T) {
	mayRate := decimal.NewFromFloat(0.3071)
	rates := domain.RateTable{
		{Year: 2017, Month: time.May}: &mayRate,
	}

	orders := []domain.Order{
		testOrder("o1", 2017, time.May, "100.00"),
		testOrder("o2", 2017, time.May, "50.00"),
	}

	rows := Enrich(orders, rates)
	require.Len(t, rows, 2)

	require.Equal(t, "o1", rows[0].ID)
	require.True(t, rows[0].Amount.Equal(mustDecimalFromString("100.00")), "native amount must be preserved")
	require.NotNil(t, rows[0].Rate)
	require.True(t, rows[0].Rate.Equal(mayRate))
	require.NotNil(t, rows[0].Converted)
	require.True(t, rows[0].Converted.Equal(mustDecimalFromString("30.71")), "expected 30.71, got %s", rows[0].Converted.String())

	require.NotNil(t, rows[1].Converted)
	require.True(t, rows[1].Converted.Equal(mustDecimalFromString("15.355")))
}

func TestEnrich_NoRateLeavesConvertedNil(t *testing.T) {
	tests := []struct {
		name  string
		rates domain.RateTable
	}{
		{
			name:  "month never looked up",
			rates: domain.RateTable{},
		},
		{
			name: "month looked up but unavailable",
			rates: domain.RateTable{
				{Year: 2017, Month: time.June}: nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Enrich([]domain.Order{testOrder("o1", 2017, time.June, "200.00")}, tt.rates)
			require.Len(t, rows, 1)
			require.Nil(t, rows[0].Rate)
			require.Nil(t, rows[0].Converted)
			require.True(t, rows[0].Amount.Equal(mustDecimalFromString("200.00")))
		})
	}
}

func TestEnrich_PreservesInputOrder(t *testing.T) {
	orders := []domain.Order{
		testOrder("o3", 2017, time.June, "1"),
		testOrder("o1", 2017, time.May, "2"),
		testOrder("o2", 2017, time.May, "3"),
	}

	rows := Enrich(orders, domain.RateTable{})
	require.Len(t, rows, 3)
	require.Equal(t, "o3", rows[0].ID)
	require.Equal(t, "o1", rows[1].ID)
	require.Equal(t, "o2", rows[2].ID)
}

func TestCountMissingRate(t *testing.T) {
	mayRate := decimal.NewFromFloat(0.3071)
	rates := domain.RateTable{
		{Year: 2017, Month: time.May}: &mayRate,
	}

	rows := Enrich([]domain.Order{
		testOrder("o1", 2017, time.May, "100.00"),
		testOrder("o2", 2017, time.June, "200.00"),
		testOrder("o3", 2017, time.July, "10.00"),
	}, rates)

	require.Equal(t, 2, CountMissingRate(rows))
}
