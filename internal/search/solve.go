// Package search holds the candidate search strategies and the solve
// pipeline that combines them with the visited-cell count.
package search

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/registry"
)

// Solve computes both answers for m: the number of distinct cells on the
// unmodified patrol and the number of single-obstacle placements that trap
// the guard, using strategy s for the second.
func Solve(ctx context.Context, m patrol.Map, s registry.Strategy, logger *log.Logger) (patrol.Report, error) {
	logger = orDiscard(logger)
	start := time.Now()

	logger.Debug("searching",
		"strategy", s.Name(),
		"grid", fmt.Sprintf("%dx%d", m.Bounds.Width, m.Bounds.Height),
		"obstacles", m.Obstacles.Len(),
	)

	// The strategy traces the base patrol once and reports its size.
	res, err := s.Search(ctx, m)
	if err != nil {
		return patrol.Report{}, fmt.Errorf("search %s: %w", s.Name(), err)
	}
	res.SortLoops()

	report := patrol.Report{
		Visited:       res.Visited,
		Candidates:    res.Candidates,
		LoopObstacles: res.Count(),
		Loops:         res.Loops,
		Strategy:      s.Name(),
		Elapsed:       time.Since(start),
	}

	logger.Info("solved",
		"strategy", report.Strategy,
		"visited", report.Visited,
		"candidates", report.Candidates,
		"loops", report.LoopObstacles,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

// SolveNamed looks up a registered strategy by name and runs Solve.
func SolveNamed(ctx context.Context, m patrol.Map, name string, opts registry.Options) (patrol.Report, error) {
	s, err := registry.Create(name, opts)
	if err != nil {
		return patrol.Report{}, err
	}
	return Solve(ctx, m, s, opts.Logger)
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
