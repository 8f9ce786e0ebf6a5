package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// PatrolFrame is one animation frame of a patrol.
type PatrolFrame struct {
	Map     patrol.Map
	Trail   []patrol.Position // cells walked so far, in order
	Guard   patrol.Guard      // current guard position and facing
	Loops   []patrol.Position // loop placements to mark; may be nil
	Visible bool              // draw the guard marker
}

// DrawPatrol draws a frame into s with the grid's top-left cell at (x, y).
// Cells that fall outside the screen are clipped.
func DrawPatrol(s *core.Screen, x, y int, f PatrolFrame) {
	b := f.Map.Bounds
	for gy := range b.Height {
		for gx := range b.Width {
			p := patrol.P(gx, gy)
			if f.Map.Obstacles.Has(p) {
				s.SetColor(x+gx, y+gy, patrol.RuneObstacle, core.ColorObstacle)
			} else {
				s.SetColor(x+gx, y+gy, patrol.RuneFloor, core.ColorFloor)
			}
		}
	}

	for _, p := range f.Trail {
		s.SetColor(x+p.X, y+p.Y, patrol.RuneVisited, core.ColorTrail)
	}
	for _, p := range f.Loops {
		s.SetColor(x+p.X, y+p.Y, patrol.RuneLoop, core.ColorLoop)
	}
	if f.Visible {
		g := f.Guard
		s.SetColor(x+g.Pos.X, y+g.Pos.Y, g.Facing.Rune(), core.ColorGuard)
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
