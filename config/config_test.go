package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/salesfx/internal/domain"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "test_config_*")
	require.NoError(t, err, "Failed to create temp directory")

	t.Cleanup(func() {
		os.RemoveAll(tempDir)
	})

	path := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "data/orders.csv", conf.InputPath)
	require.Equal(t, "pipeline_outputs", conf.OutputDir)
	require.Equal(t, domain.Pair{From: "BRL", To: "USD"}, conf.Pair)
	require.Equal(t, "https://api.exchangerate.host", conf.RatesAPIURL)
	require.Equal(t, 10*time.Second, conf.RequestTimeout)
	require.True(t, conf.FallbackRate.Equal(decimal.NewFromFloat(0.25)))
	require.Equal(t, "processed", conf.S3Prefix)
	require.Equal(t, "wal/runs", conf.JournalDir)
	require.Empty(t, conf.S3Bucket)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeTempConfig(t, `
input_path: data/my_orders.csv
pair: eur_gbp
request_timeout: 30s
fallback_rate: "0.5"
s3_bucket: sales-bucket
`)

	conf, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "data/my_orders.csv", conf.InputPath)
	require.Equal(t, domain.Pair{From: "EUR", To: "GBP"}, conf.Pair)
	require.Equal(t, 30*time.Second, conf.RequestTimeout)
	require.True(t, conf.FallbackRate.Equal(decimal.NewFromFloat(0.5)))
	require.Equal(t, "sales-bucket", conf.S3Bucket)

	// unset fields still get defaults
	require.Equal(t, "pipeline_outputs", conf.OutputDir)
	require.Equal(t, "https://api.exchangerate.host", conf.RatesAPIURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SALESFX_INPUT", "env/orders.csv")
	t.Setenv("SALESFX_OUTPUT_DIR", "env_outputs")
	t.Setenv("SALESFX_S3_BUCKET", "env-bucket")
	t.Setenv("SALESFX_RATES_API_KEY", "env-key")

	conf, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "env/orders.csv", conf.InputPath)
	require.Equal(t, "env_outputs", conf.OutputDir)
	require.Equal(t, "env-bucket", conf.S3Bucket)
	require.Equal(t, "env-key", conf.RatesAPIKey)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidParams(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expectedErr string
	}{
		{
			name:        "pair without underscore",
			yaml:        "pair: BRLUSD\n",
			expectedErr: "pair",
		},
		{
			name:        "bad timeout",
			yaml:        "request_timeout: fast\n",
			expectedErr: "request_timeout",
		},
		{
			name:        "negative timeout",
			yaml:        "request_timeout: -5s\n",
			expectedErr: "must be positive",
		},
		{
			name:        "fallback rate not a number",
			yaml:        "fallback_rate: abc\n",
			expectedErr: "fallback_rate",
		},
		{
			name:        "negative fallback rate",
			yaml:        "fallback_rate: \"-0.25\"\n",
			expectedErr: "must be positive",
		},
		{
			name:        "rates api url not a url",
			yaml:        "rates_api_url: not-a-url\n",
			expectedErr: "validate config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.yaml)

			_, err := Load(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestPairFromString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    domain.Pair
	}{
		{
			name:     "valid pair",
			input:    "BRL_USD",
			expected: domain.Pair{From: "BRL", To: "USD"},
		},
		{
			name:     "lowercase is normalized",
			input:    "brl_usd",
			expected: domain.Pair{From: "BRL", To: "USD"},
		},
		{
			name:        "no underscore",
			input:       "BRLUSD",
			expectError: true,
		},
		{
			name:        "empty quote",
			input:       "BRL_",
			expectError: true,
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := PairFromString(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, pair)
		})
	}
}
