// Package store owns the in-memory collection of normalized historical fire
// records. The collection is built exactly once per process and is read-only
// afterwards, so concurrent assessments share it without locking.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
)

// sourceFiles are the five named historical datasets. The fifth registry
// export was too large for a single file and ships split in two parts.
var sourceFiles = []string{
	"wildfire_data_1.json",
	"wildfire_data_2.json",
	"wildfire_data_3.json",
	"wildfire_data_5part_1.json",
	"wildfire_data_5part_2.json",
}

// nanToken appears bare in some registry exports where a number is unknown.
// It is not valid JSON, so the loader substitutes null before decoding.
var (
	nanToken  = []byte("NaN")
	nullToken = []byte("null")
)

// FireStore loads and holds the unified historical fire record collection.
type FireStore struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics

	once    sync.Once
	loaded  atomic.Bool
	records []domain.FireRecord
}

// NewFireStore creates a store reading its datasets from dir. Nothing is
// loaded until EnsureLoaded is called.
func NewFireStore(dir string, logger *slog.Logger, metrics *observability.Metrics) *FireStore {
	return &FireStore{dir: dir, logger: logger, metrics: metrics}
}

// EnsureLoaded reads and normalizes every source dataset exactly once, even
// under concurrent first callers. A source that fails to read or decode is
// logged and skipped; one broken dataset never aborts the others. Subsequent
// calls are no-ops.
func (s *FireStore) EnsureLoaded() {
	s.once.Do(s.loadAll)
}

// Loaded reports whether the one-time load has completed.
func (s *FireStore) Loaded() bool {
	return s.loaded.Load()
}

// Records returns the unified collection. Callers must treat the slice as
// read-only; it is shared across concurrent assessments.
func (s *FireStore) Records() []domain.FireRecord {
	return s.records
}

func (s *FireStore) loadAll() {
	for _, name := range sourceFiles {
		records, dropped, err := LoadSource(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn("skipping historical dataset", "file", name, "error", err)
			s.metrics.SourcesFailed.Inc()
			continue
		}
		if dropped > 0 {
			s.logger.Debug("dropped entries without coordinates", "file", name, "dropped", dropped)
		}
		s.records = append(s.records, records...)
	}

	s.metrics.RecordsLoaded.Set(float64(len(s.records)))
	s.logger.Info("historical fire records loaded", "count", len(s.records), "sources", len(sourceFiles))
	s.loaded.Store(true)
}

// Sources returns the fixed dataset filenames, for tooling that inspects
// datasets one at a time.
func Sources() []string {
	out := make([]string, len(sourceFiles))
	copy(out, sourceFiles)
	return out
}

// LoadSource reads one dataset file and returns its normalized records plus
// the count of entries dropped for missing coordinates.
func LoadSource(path string) ([]domain.FireRecord, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read dataset: %w", err)
	}

	data = bytes.ReplaceAll(data, nanToken, nullToken)

	var raws []domain.RawFireRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, fmt.Errorf("decode dataset %s: %w", filepath.Base(path), err)
	}

	records := make([]domain.FireRecord, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		rec, ok := domain.NormalizeFireRecord(raw)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped, nil
}
