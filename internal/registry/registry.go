// Package registry provides a global registry for candidate search strategies.
// Strategies register themselves in init() functions, allowing the CLI and
// the terminal platform to pick one by name without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// Strategy runs the candidate search for a map: one trial per candidate
// placement, reporting the placements that trap the guard.
type Strategy interface {
	// Name returns the identifier used on the command line (e.g., "parallel").
	Name() string

	// Description returns a one-line human-readable summary.
	Description() string

	// Search traces the unmodified patrol, runs every trial and returns
	// the visited count with the loop placements.
	// It returns ctx.Err() if the context is cancelled first.
	Search(ctx context.Context, m patrol.Map) (patrol.SearchResult, error)
}

// Options configures a strategy instance.
type Options struct {
	Workers int         // upper bound on concurrent trials; 0 picks a default
	Logger  *log.Logger // may be nil
}

// StrategyInfo contains metadata about a registered strategy.
type StrategyInfo struct {
	Name        string
	Description string
}

// Factory is a function that creates a new strategy instance.
type Factory func(opts Options) Strategy

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Typically called from a strategy's init() function.
// Panics if a strategy with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = f(Options{}).Description()
}

// List returns information about all registered strategies, sorted by name.
func List() []StrategyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StrategyInfo, 0, len(factories))
	for name := range factories {
		result = append(result, StrategyInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a strategy by name.
// Returns an error if the name is not registered.
func Create(name string, opts Options) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", name)
	}

	return f(opts), nil
}

// Exists checks if a strategy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
