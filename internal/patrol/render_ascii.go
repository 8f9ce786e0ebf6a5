package patrol

import "strings"

// Marker runes used by RenderASCII.
const (
	RuneFloor    = '.'
	RuneObstacle = '#'
	RuneVisited  = 'X'
	RuneLoop     = 'O'
)

// RenderASCII draws the map as text, one line per row.
// Visited cells are marked 'X', loop placements 'O' and the guard start with
// its facing marker. Either set may be nil.
//
// This is used for debugging, testing (golden outputs), and --draw output.
func RenderASCII(m Map, visited CellSet, loops []Position) string {
	loopSet := make(CellSet, len(loops))
	for _, p := range loops {
		loopSet.Add(p)
	}

	var sb strings.Builder
	sb.Grow((m.Bounds.Width + 1) * m.Bounds.Height)

	for y := range m.Bounds.Height {
		for x := range m.Bounds.Width {
			sb.WriteRune(cellRune(m, P(x, y), visited, loopSet))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellRune(m Map, p Position, visited, loops CellSet) rune {
	switch {
	case p == m.Start.Pos:
		return m.Start.Facing.Rune()
	case m.Obstacles.Has(p):
		return RuneObstacle
	case loops.Has(p):
		return RuneLoop
	case visited.Has(p):
		return RuneVisited
	default:
		return RuneFloor
	}
}
