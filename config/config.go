// Package config loads pipeline configuration from YAML and the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/salesfx/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config is the typed runtime configuration.
type Config struct {
	InputPath      string
	OutputDir      string
	Pair           domain.Pair
	RatesAPIURL    string
	RatesAPIKey    string
	RequestTimeout time.Duration
	FallbackRate   decimal.Decimal
	S3Bucket       string
	S3Prefix       string
	JournalDir     string
}

// ConfigTmp mirrors the YAML document before typed parsing.
type ConfigTmp struct {
	InputPath         string `yaml:"input_path,omitempty" default:"data/orders.csv" validate:"required"`
	OutputDir         string `yaml:"output_dir,omitempty" default:"pipeline_outputs" validate:"required"`
	Pair              string `yaml:"pair,omitempty" default:"BRL_USD" validate:"required"`
	RatesAPIURL       string `yaml:"rates_api_url,omitempty" default:"https://api.exchangerate.host" validate:"required,url"`
	RequestTimeoutStr string `yaml:"request_timeout,omitempty" default:"10s"`
	FallbackRateStr   string `yaml:"fallback_rate,omitempty" default:"0.25"`
	S3Bucket          string `yaml:"s3_bucket,omitempty"`
	S3Prefix          string `yaml:"s3_prefix,omitempty" default:"processed"`
	JournalDir        string `yaml:"journal_dir,omitempty" default:"wal/runs"`
}

// Load reads configuration from the YAML file at path, fills defaults and
// applies environment overrides. An empty path yields pure defaults.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var tmp ConfigTmp
	if path != "" {
		payload, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(payload, &tmp); err != nil {
			return Config{}, errors.Wrap(err, "parse config file")
		}
	}

	if err := defaults.Set(&tmp); err != nil {
		return Config{}, errors.Wrap(err, "apply config defaults")
	}

	applyEnv(&tmp)

	if err := validator.New().Struct(tmp); err != nil {
		return Config{}, errors.Wrap(err, "validate config")
	}

	return tmp.parse()
}

// Environment overrides. The rates API key is env-only so secrets stay out
// of config files.
func applyEnv(tmp *ConfigTmp) {
	if v := os.Getenv("SALESFX_INPUT"); v != "" {
		tmp.InputPath = v
	}
	if v := os.Getenv("SALESFX_OUTPUT_DIR"); v != "" {
		tmp.OutputDir = v
	}
	if v := os.Getenv("SALESFX_S3_BUCKET"); v != "" {
		tmp.S3Bucket = v
	}
}

func (c ConfigTmp) parse() (Config, error) {
	pair, err := PairFromString(c.Pair)
	if err != nil {
		return Config{}, errors.Wrapf(err, "incorrect 'pair' param in config: %s", c.Pair)
	}

	timeout, err := time.ParseDuration(c.RequestTimeoutStr)
	if err != nil {
		return Config{}, errors.Wrap(err, "incorrect 'request_timeout' param in config (correct format is 10s)")
	}
	if timeout <= 0 {
		return Config{}, errors.Errorf("incorrect 'request_timeout' param in config: %s, must be positive", timeout)
	}

	fallback, err := decimal.NewFromString(c.FallbackRateStr)
	if err != nil {
		return Config{}, errors.Wrap(err, "incorrect 'fallback_rate' param in config (must be a decimal)")
	}
	if !fallback.IsPositive() {
		return Config{}, errors.Errorf("incorrect 'fallback_rate' param in config: %s, must be positive", fallback.String())
	}

	return Config{
		InputPath:      c.InputPath,
		OutputDir:      c.OutputDir,
		Pair:           pair,
		RatesAPIURL:    c.RatesAPIURL,
		RatesAPIKey:    os.Getenv("SALESFX_RATES_API_KEY"),
		RequestTimeout: timeout,
		FallbackRate:   fallback,
		S3Bucket:       c.S3Bucket,
		S3Prefix:       c.S3Prefix,
		JournalDir:     c.JournalDir,
	}, nil
}

// PairFromString parses a BASE_QUOTE currency pair like BRL_USD.
func PairFromString(pairStr string) (domain.Pair, error) {
	pairElements := strings.Split(pairStr, "_")
	if len(pairElements) != 2 || pairElements[0] == "" || pairElements[1] == "" {
		return domain.Pair{}, errors.New("invalid pair param, correct format is BASE_QUOTE")
	}
	return domain.Pair{
		From: strings.ToUpper(pairElements[0]),
		To:   strings.ToUpper(pairElements[1]),
	}, nil
}
