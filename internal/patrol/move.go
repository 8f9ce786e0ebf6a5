package patrol

import "fmt"

// Advance casts a ray from the guard along its facing and returns where the
// guard stops. If an obstacle lies ahead the stop is the cell just before it
// and hit is true; otherwise the stop is the last cell inside the grid and
// hit is false. A guard already on the edge facing outward stays put.
//
// Advance panics if the computed stop falls outside b, which only happens
// when the index holds obstacles the bounds do not cover.
func Advance(g Guard, idx *ObstacleIndex, b Bounds) (stop Position, hit bool) {
	axis := g.Facing.Axis()
	dir := g.Facing.Direction()

	line, from := g.Pos.X, g.Pos.Y
	if axis == AxisRow {
		line, from = g.Pos.Y, g.Pos.X
	}

	to, hit := idx.Next(axis, line, from, dir)
	if hit {
		// Step back from the obstacle towards the guard.
		if dir == Forward {
			to--
		} else {
			to++
		}
	} else {
		to = b.edge(axis, dir)
	}

	stop = P(line, to)
	if axis == AxisRow {
		stop = P(to, line)
	}

	if !b.Contains(stop) {
		panic(fmt.Sprintf("patrol: stop %s outside %dx%d grid (guard %s facing %s)",
			stop, b.Width, b.Height, g.Pos, g.Facing))
	}
	return stop, hit
}
