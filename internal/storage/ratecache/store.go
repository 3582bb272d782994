// Package ratecache persists resolved conversion rates between pipeline runs.
package ratecache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/salesfx/internal/domain"
)

const cacheFileName = "rates_cache.json"

// Store persists the month-keyed rate table so repeated runs skip already
// resolved lookups. Months without an available rate are stored as null.
type Store struct {
	path string
}

// NewStore creates a rate cache store inside dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create rate cache dir")
	}
	return &Store{path: filepath.Join(dir, cacheFileName)}, nil
}

// Path returns the cache file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load reads the cached rate table from disk. A missing or empty file yields
// an empty table.
func (s *Store) Load() (domain.RateTable, error) {
	if s == nil || s.path == "" {
		return domain.RateTable{}, nil
	}

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.RateTable{}, nil
		}
		return nil, errors.Wrap(err, "read rate cache")
	}

	if len(payload) == 0 {
		return domain.RateTable{}, nil
	}

	var raw map[string]*string
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, errors.Wrap(err, "decode rate cache")
	}

	table := make(domain.RateTable, len(raw))
	for key, value := range raw {
		month, err := domain.ParseMonthKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "decode rate cache key %q", key)
		}

		if value == nil {
			table[month] = nil
			continue
		}

		rate, err := decimal.NewFromString(*value)
		if err != nil {
			return nil, errors.Wrapf(err, "decode rate cache value for %s", key)
		}
		table[month] = &rate
	}

	return table, nil
}

// Save writes the rate table to disk atomically via temp file, replacing
// previous contents.
func (s *Store) Save(table domain.RateTable) error {
	if s == nil || s.path == "" {
		return nil
	}

	raw := make(map[string]*string, len(table))
	for month, rate := range table {
		if rate == nil {
			raw[month.String()] = nil
			continue
		}
		value := rate.String()
		raw[month.String()] = &value
	}

	payload, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode rate cache")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return errors.Wrap(err, "write rate cache temp file")
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "persist rate cache")
	}

	return nil
}
