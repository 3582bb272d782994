package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/salesfx/internal/domain"
)

var testPair = domain.Pair{From: "BRL", To: "USD"}

func TestHistoricalRate_Success(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"base":    r.URL.Query().Get("base"),
			"symbols": r.URL.Query().Get("symbols"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates":{"USD":0.3071}}`))
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.URL, "", 5*time.Second)

	date := time.Date(2017, time.May, 1, 0, 0, 0, 0, time.UTC)
	rate, err := client.HistoricalRate(context.Background(), date, testPair)
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.NewFromFloat(0.3071)), "expected 0.3071, got %s", rate.String())

	require.Equal(t, "/2017-05-01", gotPath)
	require.Equal(t, "BRL", gotQuery["base"])
	require.Equal(t, "USD", gotQuery["symbols"])
}

func TestHistoricalRate_SendsAccessKey(t *testing.T) {
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("access_key")
		_, _ = w.Write([]byte(`{"rates":{"USD":0.31}}`))
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.URL, "secret-key", 5*time.Second)

	_, err := client.HistoricalRate(context.Background(), time.Date(2017, time.May, 1, 0, 0, 0, 0, time.UTC), testPair)
	require.NoError(t, err)
	require.Equal(t, "secret-key", gotKey)
}

func TestHistoricalRate_MissingSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{}}`))
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.URL, "", 5*time.Second)

	_, err := client.HistoricalRate(context.Background(), time.Date(2017, time.June, 1, 0, 0, 0, 0, time.UTC), testPair)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrRateUnavailable), "expected ErrRateUnavailable, got %v", err)
}

func TestHistoricalRate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.URL, "", 5*time.Second)

	_, err := client.HistoricalRate(context.Background(), time.Date(2017, time.May, 1, 0, 0, 0, 0, time.UTC), testPair)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}

func TestHistoricalRate_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.URL, "", 5*time.Second)

	_, err := client.HistoricalRate(context.Background(), time.Date(2017, time.May, 1, 0, 0, 0, 0, time.UTC), testPair)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmarshal")
}
