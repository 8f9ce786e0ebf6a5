package search

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/registry"
)

// NameSequential is the registry name of the single-goroutine strategy.
const NameSequential = "sequential"

func init() {
	registry.Register(NameSequential, func(opts registry.Options) registry.Strategy {
		return NewSequential(opts.Logger)
	})
}

// Sequential runs trials one after another in row-major candidate order.
type Sequential struct {
	logger *log.Logger
}

// NewSequential creates a sequential strategy. The logger may be nil.
func NewSequential(logger *log.Logger) *Sequential {
	return &Sequential{logger: orDiscard(logger)}
}

func (s *Sequential) Name() string { return NameSequential }

func (s *Sequential) Description() string {
	return "one trial at a time, in row-major order"
}

// Search runs every trial, checking ctx between trials.
func (s *Sequential) Search(ctx context.Context, m patrol.Map) (patrol.SearchResult, error) {
	visited := patrol.Visited(m)
	candidates := patrol.CandidatesFrom(visited, m.Start.Pos)
	res := patrol.SearchResult{Visited: visited.Len(), Candidates: len(candidates)}

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return patrol.SearchResult{}, err
		}
		if patrol.Trial(m, c) {
			s.logger.Debug("loop placement", "pos", c)
			res.Loops = append(res.Loops, c)
		}
	}
	return res, nil
}
