package patrol

import (
	"fmt"
	"maps"
	"slices"
)

// CellSet is a set of grid positions.
type CellSet map[Position]struct{}

// Add inserts p into the set.
func (s CellSet) Add(p Position) {
	s[p] = struct{}{}
}

// Has reports whether p is in the set.
func (s CellSet) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of positions in the set.
func (s CellSet) Len() int {
	return len(s)
}

// Sorted returns the positions ordered by row then column.
func (s CellSet) Sorted() []Position {
	return slices.SortedFunc(maps.Keys(s), comparePositions)
}

// comparePositions orders positions by row then column.
func comparePositions(a, b Position) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

// Segment returns every cell on the straight line from a to b, both ends
// included, in travel order. Equal endpoints give a single cell.
// Panics if a and b differ in both coordinates.
func Segment(a, b Position) []Position {
	if a.X != b.X && a.Y != b.Y {
		panic(fmt.Sprintf("patrol: segment %s -> %s is not axis-aligned", a, b))
	}

	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	n := abs(b.X-a.X) + abs(b.Y-a.Y) + 1

	cells := make([]Position, 0, n)
	for i := range n {
		cells = append(cells, P(a.X+i*dx, a.Y+i*dy))
	}
	return cells
}

// Visited returns every distinct cell the guard covers on its unmodified
// patrol, including the start cell.
func Visited(m Map) CellSet {
	visited := make(CellSet)
	for _, p := range Trail(m) {
		visited.Add(p)
	}
	return visited
}

// Trail returns the cells the guard walks through in order, starting with
// its start cell. Cells crossed more than once appear more than once.
// If the layout already traps the guard, the trail ends after one lap,
// back on the first repeated stop.
func Trail(m Map) []Position {
	prev := m.Start.Pos
	trail := []Position{prev}
	seen := make(map[Waypoint]struct{})

	for wp := range NewRoute(m).Waypoints() {
		// Skip the segment's first cell, it is the previous stop.
		trail = append(trail, Segment(prev, wp.Pos)[1:]...)
		prev = wp.Pos

		// The segment into a repeated stop closes the lap and may cross
		// cells not walked before.
		if _, dup := seen[wp]; dup {
			break
		}
		seen[wp] = struct{}{}
	}
	return trail
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
