package patrol_test

import (
	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/scenario"
)

// referenceGrid is the worked 10x10 example: 41 visited cells, 6 loop placements.
const referenceGrid = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...
`

// topRowGrid turns left on the top row and leaves upward: 4 cells, no loops.
const topRowGrid = `#...v
....#
.....
.....
.....
`

// squareGrid traps the guard in a 3x3 square from the start.
const squareGrid = `.#...
....#
.....
#^...
...#.
`

// closingGrid loops from the start; the lap closes over (3,2), a cell the
// guard first crosses on that closing segment.
const closingGrid = `...##.
...^.#
......
..#..#
....#.
......
`

func mustMap(grid string) patrol.Map {
	return scenario.MustParse(grid)
}

func collect(r *patrol.Route, limit int) []patrol.Waypoint {
	var out []patrol.Waypoint
	for wp := range r.Waypoints() {
		out = append(out, wp)
		if len(out) == limit {
			break
		}
	}
	return out
}
