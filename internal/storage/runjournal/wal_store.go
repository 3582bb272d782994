// Package runjournal persists pipeline run records in a WAL for local audit.
package runjournal

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
	"github.com/vadiminshakov/salesfx/internal/domain"
)

const (
	DefaultDir   = "./wal/runs"
	segmentLimit = 100
	maxSegments  = 10

	runKeyPrefix = "run_"
)

// WALStore persists run records in a WAL.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed run journal.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "journal_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init run journal WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Append writes the run record to the WAL.
func (s *WALStore) Append(record domain.RunRecord) error {
	if s == nil || s.wal == nil {
		return errors.New("run journal is not initialized")
	}
	if record.RunID == "" {
		return errors.New("run record id is required")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal run record")
	}

	key := fmt.Sprintf("%s%s", runKeyPrefix, record.RunID)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, key, payload)
}

// Runs returns all persisted run records in write order.
func (s *WALStore) Runs() ([]domain.RunRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("run journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	records := make([]domain.RunRecord, 0, current)
	for idx := uint64(1); idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(key, runKeyPrefix) {
			continue
		}

		var record domain.RunRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, errors.Wrap(err, "decode run record")
		}
		records = append(records, record)
	}

	return records, nil
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("run journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
