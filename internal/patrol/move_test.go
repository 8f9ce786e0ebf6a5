package patrol_test

import (
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

func TestAdvance(t *testing.T) {
	m := mustMap(topRowGrid) // obstacles at (0,0) and (4,1)

	testCases := []struct {
		name  string
		guard patrol.Guard
		stop  patrol.Position
		hit   bool
	}{
		{"obstacle directly below", patrol.Guard{Pos: patrol.P(4, 0), Facing: patrol.Down}, patrol.P(4, 0), true},
		{"obstacle far left", patrol.Guard{Pos: patrol.P(4, 0), Facing: patrol.Left}, patrol.P(1, 0), true},
		{"on edge facing out", patrol.Guard{Pos: patrol.P(1, 0), Facing: patrol.Up}, patrol.P(1, 0), false},
		{"clear to right edge", patrol.Guard{Pos: patrol.P(2, 2), Facing: patrol.Right}, patrol.P(4, 2), false},
		{"clear to bottom edge", patrol.Guard{Pos: patrol.P(2, 2), Facing: patrol.Down}, patrol.P(2, 4), false},
		{"clear to left edge", patrol.Guard{Pos: patrol.P(3, 3), Facing: patrol.Left}, patrol.P(0, 3), false},
		{"obstacle above from bottom", patrol.Guard{Pos: patrol.P(4, 4), Facing: patrol.Up}, patrol.P(4, 2), true},
		{"obstacle above in corner column", patrol.Guard{Pos: patrol.P(0, 3), Facing: patrol.Up}, patrol.P(0, 1), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stop, hit := patrol.Advance(tc.guard, m.Obstacles, m.Bounds)
			if stop != tc.stop || hit != tc.hit {
				t.Errorf("Advance() = %v, %v; expected %v, %v", stop, hit, tc.stop, tc.hit)
			}
		})
	}
}

func TestAdvanceIsPure(t *testing.T) {
	m := mustMap(referenceGrid)
	before := m.Obstacles.Positions()

	first, firstHit := patrol.Advance(m.Start, m.Obstacles, m.Bounds)
	second, secondHit := patrol.Advance(m.Start, m.Obstacles, m.Bounds)

	if first != second || firstHit != secondHit {
		t.Errorf("Advance not deterministic: %v/%v vs %v/%v", first, firstHit, second, secondHit)
	}
	if first != patrol.P(4, 1) || !firstHit {
		t.Errorf("expected first stop (4,1) with hit, got %v %v", first, firstHit)
	}
	if len(m.Obstacles.Positions()) != len(before) {
		t.Error("Advance should not change the index")
	}
}

func TestAdvancePanicsOnInconsistentIndex(t *testing.T) {
	// Obstacle outside a 5x5 grid: the stop before it lands outside too.
	idx := patrol.NewObstacleIndexFrom(patrol.P(7, 0))
	b := patrol.Bounds{Width: 5, Height: 5}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for stop outside bounds")
		}
	}()
	patrol.Advance(patrol.Guard{Pos: patrol.P(2, 0), Facing: patrol.Right}, idx, b)
}
