package patrol

import (
	"maps"
	"slices"
)

// ObstacleIndex stores obstacle coordinates per column and per row.
// Every list is kept in ascending order so nearest-obstacle lookups are
// binary searches.
type ObstacleIndex struct {
	cols  map[int][]int // x -> ascending y
	rows  map[int][]int // y -> ascending x
	count int
}

// NewObstacleIndex creates an empty index.
func NewObstacleIndex() *ObstacleIndex {
	return &ObstacleIndex{
		cols: make(map[int][]int),
		rows: make(map[int][]int),
	}
}

// NewObstacleIndexFrom creates an index holding the given positions.
func NewObstacleIndexFrom(positions ...Position) *ObstacleIndex {
	idx := NewObstacleIndex()
	for _, p := range positions {
		idx.Insert(p)
	}
	return idx
}

// Insert adds an obstacle. Inserting an existing obstacle does nothing.
func (idx *ObstacleIndex) Insert(p Position) {
	col, added := insertSorted(idx.cols[p.X], p.Y)
	if !added {
		return
	}
	idx.cols[p.X] = col
	idx.rows[p.Y], _ = insertSorted(idx.rows[p.Y], p.X)
	idx.count++
}

// insertSorted inserts v into the ascending list s.
// Returns the list unchanged and false if v is already present.
func insertSorted(s []int, v int) ([]int, bool) {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s, false
	}
	return slices.Insert(s, i, v), true
}

// Has reports whether p holds an obstacle.
func (idx *ObstacleIndex) Has(p Position) bool {
	_, found := slices.BinarySearch(idx.cols[p.X], p.Y)
	return found
}

// Len returns the number of obstacles.
func (idx *ObstacleIndex) Len() int {
	return idx.count
}

// Next returns the obstacle coordinate nearest to from, strictly after it
// (Forward) or strictly before it (Backward), on one line of the grid.
// For AxisColumn, line is an X and the result is a Y; for AxisRow, line is a
// Y and the result is an X. The bool is false when the line is clear in
// that direction.
func (idx *ObstacleIndex) Next(axis Axis, line, from int, dir Direction) (int, bool) {
	var s []int
	if axis == AxisColumn {
		s = idx.cols[line]
	} else {
		s = idx.rows[line]
	}

	i, found := slices.BinarySearch(s, from)
	if dir == Forward {
		if found {
			i++
		}
		if i < len(s) {
			return s[i], true
		}
		return 0, false
	}

	if i > 0 {
		return s[i-1], true
	}
	return 0, false
}

// Clone returns a deep copy of the index.
func (idx *ObstacleIndex) Clone() *ObstacleIndex {
	return &ObstacleIndex{
		cols:  cloneLines(idx.cols),
		rows:  cloneLines(idx.rows),
		count: idx.count,
	}
}

func cloneLines(lines map[int][]int) map[int][]int {
	out := make(map[int][]int, len(lines))
	for k, v := range lines {
		out[k] = slices.Clone(v)
	}
	return out
}

// Positions returns all obstacles ordered by row then column.
func (idx *ObstacleIndex) Positions() []Position {
	out := make([]Position, 0, idx.count)
	for _, y := range slices.Sorted(maps.Keys(idx.rows)) {
		for _, x := range idx.rows[y] {
			out = append(out, P(x, y))
		}
	}
	return out
}
