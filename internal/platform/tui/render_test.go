package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/guard-patrol/internal/core"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

func TestDrawPatrol(t *testing.T) {
	m := mustMap(squareGrid)
	s := core.NewScreen(5, 5)

	DrawPatrol(s, 0, 0, PatrolFrame{
		Map:     m,
		Trail:   []patrol.Position{patrol.P(1, 3), patrol.P(1, 2)},
		Guard:   patrol.Guard{Pos: patrol.P(1, 2), Facing: patrol.Up},
		Loops:   []patrol.Position{patrol.P(3, 3)},
		Visible: true,
	})

	want := strings.Join([]string{
		".#...",
		"....#",
		".^...",
		"#X.O.",
		"...#.",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("DrawPatrol mismatch:\n%s\nexpected:\n%s", got, want)
	}

	if c := s.GetCell(1, 0); c.Color != core.ColorObstacle {
		t.Errorf("obstacle color = %v, expected %v", c.Color, core.ColorObstacle)
	}
	if c := s.GetCell(1, 3); c.Color != core.ColorTrail {
		t.Errorf("trail color = %v, expected %v", c.Color, core.ColorTrail)
	}
	if c := s.GetCell(1, 2); c.Color != core.ColorGuard {
		t.Errorf("guard color = %v, expected %v", c.Color, core.ColorGuard)
	}
}

func TestDrawPatrolOffsetAndClip(t *testing.T) {
	m := mustMap(squareGrid)
	s := core.NewScreen(4, 3)

	DrawPatrol(s, 2, 1, PatrolFrame{Map: m})

	if s.Get(3, 1) != '#' {
		t.Errorf("expected obstacle (1,0) drawn at (3,1), got %q", s.Get(3, 1))
	}
	if s.Get(0, 0) != ' ' || s.Get(1, 2) != ' ' {
		t.Error("cells left of the offset should stay blank")
	}
}

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorRed)
	s.DrawText(0, 1, "xyz", core.ColorGray)

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d has visible width %d, expected 6", i, w)
		}
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, expected %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText should not trim, got %q", got)
	}
}
