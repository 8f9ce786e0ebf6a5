package patrol

import (
	"slices"
	"time"
)

// Map is a patrol layout: grid bounds, obstacles and the guard's start.
// A Map is treated as immutable; trials work on clones.
type Map struct {
	Bounds    Bounds
	Obstacles *ObstacleIndex
	Start     Guard
}

// NewMap creates a map with the given size, guard and obstacles.
func NewMap(width, height int, start Guard, obstacles ...Position) Map {
	return Map{
		Bounds:    Bounds{Width: width, Height: height},
		Obstacles: NewObstacleIndexFrom(obstacles...),
		Start:     start,
	}
}

// Clone returns a copy of the map with its own obstacle index.
func (m Map) Clone() Map {
	m.Obstacles = m.Obstacles.Clone()
	return m
}

// WithObstacle returns a clone of the map with one extra obstacle at p.
// The receiver is not modified.
func (m Map) WithObstacle(p Position) Map {
	c := m.Clone()
	c.Obstacles.Insert(p)
	return c
}

// Candidates returns the cells worth blocking: every cell of the unmodified
// patrol except the guard's start, ordered by row then column. Blocking a
// cell the guard never reaches cannot change its route.
func Candidates(m Map) []Position {
	return CandidatesFrom(Visited(m), m.Start.Pos)
}

// CandidatesFrom is Candidates for an already traced patrol. visited is
// not modified.
func CandidatesFrom(visited CellSet, start Position) []Position {
	cells := visited.Sorted()
	if i, found := slices.BinarySearchFunc(cells, start, comparePositions); found {
		cells = slices.Delete(cells, i, i+1)
	}
	return cells
}

// Trial reports whether placing one obstacle at p makes the guard loop.
// It works on its own clone and is safe to run concurrently with other
// trials on the same map.
func Trial(m Map, p Position) bool {
	return IsLoop(m.WithObstacle(p))
}

// SearchResult is the outcome of a candidate search.
type SearchResult struct {
	Visited    int        // distinct cells on the unmodified patrol
	Candidates int        // trials run
	Loops      []Position // placements that trap the guard, row-major order
}

// Count returns the number of loop-inducing placements.
func (r SearchResult) Count() int {
	return len(r.Loops)
}

// SortLoops orders the loop placements by row then column.
func (r *SearchResult) SortLoops() {
	slices.SortFunc(r.Loops, comparePositions)
}

// Report holds both answers for a map.
type Report struct {
	Visited       int           // distinct cells on the unmodified patrol
	Candidates    int           // placements tried
	LoopObstacles int           // placements that trap the guard
	Loops         []Position    // those placements, row-major order
	Strategy      string        // search strategy used
	Elapsed       time.Duration // wall time of the whole solve
}
