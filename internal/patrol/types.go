// Package patrol simulates a guard walking a rectangular grid and finds the
// single-obstacle placements that trap the guard in a cycle.
// This package is UI-agnostic and deterministic.
package patrol

import "fmt"

// Facing is the direction the guard is walking.
type Facing uint8

const (
	Up Facing = iota
	Right
	Down
	Left
)

// String returns the string representation of a facing.
func (f Facing) String() string {
	switch f {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// Turn returns the facing after a 90 degree clockwise rotation.
// Up -> Right -> Down -> Left -> Up.
func (f Facing) Turn() Facing {
	return (f + 1) % 4
}

// Delta returns the (dx, dy) offset for one step in this facing.
// Up decreases Y, Down increases Y (screen coordinates).
func (f Facing) Delta() (dx, dy int) {
	switch f {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Axis returns the line the guard travels along when walking this way.
// Vertical facings move within a column, horizontal ones within a row.
func (f Facing) Axis() Axis {
	if f == Up || f == Down {
		return AxisColumn
	}
	return AxisRow
}

// Direction returns whether walking this way increases the travelled coordinate.
func (f Facing) Direction() Direction {
	if f == Down || f == Right {
		return Forward
	}
	return Backward
}

// Rune returns the grid marker for a guard with this facing.
func (f Facing) Rune() rune {
	switch f {
	case Up:
		return '^'
	case Right:
		return '>'
	case Down:
		return 'v'
	case Left:
		return '<'
	default:
		return '?'
	}
}

// FacingFromRune parses a guard marker.
func FacingFromRune(r rune) (Facing, bool) {
	switch r {
	case '^':
		return Up, true
	case '>':
		return Right, true
	case 'v':
		return Down, true
	case '<':
		return Left, true
	default:
		return 0, false
	}
}

// Axis selects whether an obstacle lookup runs along a column or a row.
type Axis uint8

const (
	AxisColumn Axis = iota // fixed X, varying Y
	AxisRow                // fixed Y, varying X
)

// Direction selects the search side in an obstacle lookup.
type Direction uint8

const (
	Forward  Direction = iota // strictly greater coordinates
	Backward                  // strictly smaller coordinates
)

// Position is a cell on the grid.
// X increases to the right, Y increases downward.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring position in the given facing.
func (p Position) Step(f Facing) Position {
	dx, dy := f.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Guard is the walker: where it stands and which way it faces.
type Guard struct {
	Pos    Position
	Facing Facing
}

// Waypoint is a stop point together with the facing the guard arrived with.
// Two waypoints are equal when both fields match, so a repeat proves a cycle.
type Waypoint struct {
	Pos    Position
	Facing Facing
}

// String returns a string representation of the waypoint.
func (w Waypoint) String() string {
	return fmt.Sprintf("%s %s", w.Pos, w.Facing)
}

// Bounds holds the fixed grid dimensions.
type Bounds struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid.
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Cells returns the number of cells in the grid.
func (b Bounds) Cells() int {
	return b.Width * b.Height
}

// MaxWaypoints is the number of distinct waypoints a grid can produce.
func (b Bounds) MaxWaypoints() int {
	return 4 * b.Cells()
}

// edge returns the coordinate of the last cell reachable in direction dir along axis.
func (b Bounds) edge(axis Axis, dir Direction) int {
	if dir == Backward {
		return 0
	}
	if axis == AxisColumn {
		return b.Height - 1
	}
	return b.Width - 1
}
