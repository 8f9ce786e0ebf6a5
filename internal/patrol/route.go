package patrol

import "iter"

// Outcome is the state of a Route.
type Outcome uint8

const (
	Advancing Outcome = iota // more stops may follow
	Exited                   // the guard walked off the grid
	Stopped                  // the consumer stopped iterating
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case Advancing:
		return "advancing"
	case Exited:
		return "exited"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Route is a single pass of a guard over an obstacle layout.
// It produces stop points lazily; the consumer decides how far to follow.
type Route struct {
	guard   Guard
	idx     *ObstacleIndex
	bounds  Bounds
	outcome Outcome
}

// NewRoute creates a route for the map's guard start.
func NewRoute(m Map) *Route {
	return NewRouteFrom(m.Start, m.Obstacles, m.Bounds)
}

// NewRouteFrom creates a route for an explicit guard, index and bounds.
func NewRouteFrom(g Guard, idx *ObstacleIndex, b Bounds) *Route {
	return &Route{guard: g, idx: idx, bounds: b}
}

// Outcome reports whether the route is still advancing, exited the grid, or
// was stopped by its consumer.
func (r *Route) Outcome() Outcome {
	return r.outcome
}

// Waypoints returns the sequence of stop points. Each yielded waypoint
// carries the facing the guard had while walking into it; the facing turns
// clockwise after every obstacle stop. The sequence ends when the guard
// reaches the edge with nothing ahead (Exited) or when the consumer breaks
// out of the loop (Stopped). A finished route yields nothing.
func (r *Route) Waypoints() iter.Seq[Waypoint] {
	return func(yield func(Waypoint) bool) {
		for r.outcome == Advancing {
			stop, hit := Advance(r.guard, r.idx, r.bounds)
			r.guard.Pos = stop

			if !yield(Waypoint{Pos: stop, Facing: r.guard.Facing}) {
				r.outcome = Stopped
				return
			}
			if !hit {
				r.outcome = Exited
				return
			}
			r.guard.Facing = r.guard.Facing.Turn()
		}
	}
}
