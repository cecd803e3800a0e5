package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

// Source loads the raw table from wherever the records live.
type Source interface {
	Load(ctx context.Context) (RawTable, error)
}

// Store owns the current dataset build. The first Get triggers a build;
// Reload rebuilds from the source and swaps atomically, so readers always
// see a complete table.
type Store struct {
	source Source
	logger *zap.Logger

	mu      sync.Mutex
	current atomic.Pointer[Table]
	onBuild func(rows int, d time.Duration)

	builds        atomic.Uint64
	buildDuration atomic.Int64
}

// NewStore creates a store over the given source. No data is loaded until
// the first Get or Reload.
func NewStore(source Source, logger *zap.Logger) *Store {
	return &Store{source: source, logger: logger}
}

// OnBuild registers a callback invoked after every successful build. Set it
// before the first Get.
func (s *Store) OnBuild(fn func(rows int, d time.Duration)) {
	s.onBuild = fn
}

// Get returns the current table, building it on first use.
func (s *Store) Get(ctx context.Context) (*Table, error) {
	if t := s.current.Load(); t != nil {
		return t, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.current.Load(); t != nil {
		return t, nil
	}
	return s.build(ctx)
}

// Reload rebuilds from the source and replaces the current table. The old
// table keeps serving readers until the swap.
func (s *Store) Reload(ctx context.Context) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(ctx)
}

func (s *Store) build(ctx context.Context) (*Table, error) {
	start := time.Now()
	raw, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("dataset load failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrSource.Code, appErrors.ErrSource.Status, appErrors.ErrSource.Message)
	}
	table := Build(raw, s.logger)
	s.current.Store(table)
	s.builds.Add(1)
	s.buildDuration.Add(time.Since(start).Milliseconds())
	if s.onBuild != nil {
		s.onBuild(len(table.Records), time.Since(start))
	}
	return table, nil
}

// BuildStats reports how many builds ran and their mean duration.
func (s *Store) BuildStats() (count uint64, avgMillis float64) {
	count = s.builds.Load()
	if count == 0 {
		return 0, 0
	}
	return count, float64(s.buildDuration.Load()) / float64(count)
}

// Loaded reports whether a table has been built yet.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}
