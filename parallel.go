package spatial

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// NeighborsParallel runs s.Neighbors for every query using numWorkers
// goroutines. Result i belongs to queries[i]. The searcher must already be
// built; queries are read-only, so no synchronization is needed.
//
// Cancellation of ctx is checked between queries; on cancellation the
// partially filled results are returned with ctx's error.
func NeighborsParallel(ctx context.Context, s FixedRadiusSearcher, queries []Point, numWorkers int) ([][]int, error) {
	out := make([][]int, len(queries))
	err := forEachQuery(ctx, len(queries), numWorkers, func(i int) error {
		out[i] = s.Neighbors(queries[i])
		return nil
	})
	return out, err
}

// OverlapsParallel runs s.Overlaps for every query using numWorkers
// goroutines. Result i belongs to queries[i].
func OverlapsParallel(ctx context.Context, s BoxSearcher, queries []AABB, numWorkers int) ([][]int, error) {
	out := make([][]int, len(queries))
	err := forEachQuery(ctx, len(queries), numWorkers, func(i int) error {
		out[i] = s.Overlaps(queries[i])
		return nil
	})
	return out, err
}

// NearestParallel runs s.Nearest for every query using numWorkers
// goroutines. It fails with ErrEmptyInput if the searcher indexes no points.
func NearestParallel(ctx context.Context, s NearestSearcher, queries []Point, numWorkers int) ([]int, error) {
	out := make([]int, len(queries))
	err := forEachQuery(ctx, len(queries), numWorkers, func(i int) error {
		idx, ok := s.Nearest(queries[i])
		if !ok {
			return fmt.Errorf("%w: nearest searcher indexes no points", ErrEmptyInput)
		}
		out[i] = idx
		return nil
	})
	return out, err
}

// forEachQuery splits [0, n) into contiguous ranges, one per worker.
// Ranges don't overlap, so fn may write to index i of a shared slice.
func forEachQuery(ctx context.Context, n, numWorkers int, fn func(i int) error) error {
	if numWorkers < 1 {
		numWorkers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	perWorker := (n + numWorkers - 1) / numWorkers

	for start := 0; start < n; start += perWorker {
		start := start
		end := min(start+perWorker, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Batch runs query batches with the worker count and logger of a Config.
type Batch struct {
	workers int
	logger  *Logger
}

// NewBatch returns a Batch configured from cfg. Only Workers and Logger are
// used.
func NewBatch(cfg Config) *Batch {
	applyDefaults(&cfg)
	return &Batch{workers: cfg.Workers, logger: cfg.Logger}
}

// Neighbors is NeighborsParallel with logging.
func (b *Batch) Neighbors(ctx context.Context, s FixedRadiusSearcher, queries []Point) ([][]int, error) {
	start := time.Now()
	out, err := NeighborsParallel(ctx, s, queries, b.workers)
	b.logger.LogQueryBatch(ctx, len(queries), b.workers, time.Since(start), err)
	return out, err
}

// Overlaps is OverlapsParallel with logging.
func (b *Batch) Overlaps(ctx context.Context, s BoxSearcher, queries []AABB) ([][]int, error) {
	start := time.Now()
	out, err := OverlapsParallel(ctx, s, queries, b.workers)
	b.logger.LogQueryBatch(ctx, len(queries), b.workers, time.Since(start), err)
	return out, err
}

// Nearest is NearestParallel with logging.
func (b *Batch) Nearest(ctx context.Context, s NearestSearcher, queries []Point) ([]int, error) {
	start := time.Now()
	out, err := NearestParallel(ctx, s, queries, b.workers)
	b.logger.LogQueryBatch(ctx, len(queries), b.workers, time.Since(start), err)
	return out, err
}
