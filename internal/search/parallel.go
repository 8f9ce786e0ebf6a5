package search

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/registry"
)

// NameParallel is the registry name of the worker-pool strategy.
const NameParallel = "parallel"

func init() {
	registry.Register(NameParallel, func(opts registry.Options) registry.Strategy {
		return NewParallel(opts.Workers, opts.Logger)
	})
}

// Parallel fans trials out over a bounded group of goroutines.
// Every trial clones the map, so workers share nothing mutable; each one
// writes only its own slot of the result slice.
type Parallel struct {
	workers int
	logger  *log.Logger
}

// NewParallel creates a parallel strategy. workers <= 0 uses one worker per CPU.
func NewParallel(workers int, logger *log.Logger) *Parallel {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Parallel{workers: workers, logger: orDiscard(logger)}
}

func (p *Parallel) Name() string { return NameParallel }

func (p *Parallel) Description() string {
	return "trials spread over a bounded worker pool"
}

// Workers returns the concurrency limit.
func (p *Parallel) Workers() int {
	return p.workers
}

// Search runs every trial and stops early if ctx is cancelled.
func (p *Parallel) Search(ctx context.Context, m patrol.Map) (patrol.SearchResult, error) {
	visited := patrol.Visited(m)
	candidates := patrol.CandidatesFrom(visited, m.Start.Pos)
	hits := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hits[i] = patrol.Trial(m, c)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return patrol.SearchResult{}, err
	}

	res := patrol.SearchResult{Visited: visited.Len(), Candidates: len(candidates)}
	for i, hit := range hits {
		if hit {
			p.logger.Debug("loop placement", "pos", candidates[i])
			res.Loops = append(res.Loops, candidates[i])
		}
	}
	return res, nil
}
