package patrol_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

func TestSegment(t *testing.T) {
	testCases := []struct {
		name string
		a, b patrol.Position
		want []patrol.Position
	}{
		{"single cell", patrol.P(2, 2), patrol.P(2, 2), []patrol.Position{patrol.P(2, 2)}},
		{"rightward", patrol.P(1, 0), patrol.P(3, 0), []patrol.Position{patrol.P(1, 0), patrol.P(2, 0), patrol.P(3, 0)}},
		{"leftward", patrol.P(3, 0), patrol.P(1, 0), []patrol.Position{patrol.P(3, 0), patrol.P(2, 0), patrol.P(1, 0)}},
		{"upward", patrol.P(4, 3), patrol.P(4, 1), []patrol.Position{patrol.P(4, 3), patrol.P(4, 2), patrol.P(4, 1)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, patrol.Segment(tc.a, tc.b)); diff != "" {
				t.Errorf("Segment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentLength(t *testing.T) {
	start := patrol.P(5, 5)
	for delta := -5; delta <= 5; delta++ {
		for _, end := range []patrol.Position{patrol.P(5+delta, 5), patrol.P(5, 5+delta)} {
			cells := patrol.Segment(start, end)

			want := delta
			if want < 0 {
				want = -want
			}
			if len(cells) != want+1 {
				t.Errorf("Segment(%v, %v) has %d cells, expected %d", start, end, len(cells), want+1)
			}
			if cells[0] != start || cells[len(cells)-1] != end {
				t.Errorf("Segment(%v, %v) endpoints = %v..%v", start, end, cells[0], cells[len(cells)-1])
			}
			for _, c := range cells {
				if c.X != start.X && c.Y != start.Y {
					t.Errorf("Segment(%v, %v) cell %v not collinear", start, end, c)
				}
			}
		}
	}
}

func TestSegmentPanicsOnDiagonal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for diagonal segment")
		}
	}()
	patrol.Segment(patrol.P(0, 0), patrol.P(1, 1))
}

func TestVisitedReference(t *testing.T) {
	m := mustMap(referenceGrid)

	visited := patrol.Visited(m)
	if visited.Len() != 41 {
		t.Errorf("expected 41 visited cells, got %d", visited.Len())
	}
	if !visited.Has(m.Start.Pos) {
		t.Error("visited set must include the start cell")
	}
	for p := range visited {
		if !m.Bounds.Contains(p) {
			t.Errorf("visited cell %v outside grid", p)
		}
		if m.Obstacles.Has(p) {
			t.Errorf("visited cell %v is an obstacle", p)
		}
	}
}

func TestVisitedTopRow(t *testing.T) {
	visited := patrol.Visited(mustMap(topRowGrid))

	want := []patrol.Position{patrol.P(1, 0), patrol.P(2, 0), patrol.P(3, 0), patrol.P(4, 0)}
	if diff := cmp.Diff(want, visited.Sorted()); diff != "" {
		t.Errorf("visited mismatch (-want +got):\n%s", diff)
	}
}

func TestVisitedStartOnly(t *testing.T) {
	m := mustMap("^..\n...\n")

	visited := patrol.Visited(m)
	if visited.Len() != 1 || !visited.Has(patrol.P(0, 0)) {
		t.Errorf("expected only the start cell, got %v", visited.Sorted())
	}
}

func TestVisitedDeterministic(t *testing.T) {
	m := mustMap(referenceGrid)

	if diff := cmp.Diff(patrol.Visited(m).Sorted(), patrol.Visited(m).Sorted()); diff != "" {
		t.Errorf("visited sets differ between runs:\n%s", diff)
	}
}

func TestTrailOnLoopingLayout(t *testing.T) {
	trail := patrol.Trail(mustMap(squareGrid))

	want := []patrol.Position{
		patrol.P(1, 3), patrol.P(1, 2), patrol.P(1, 1),
		patrol.P(2, 1), patrol.P(3, 1),
		patrol.P(3, 2), patrol.P(3, 3),
		patrol.P(2, 3), patrol.P(1, 3),
		patrol.P(1, 2), patrol.P(1, 1),
	}
	if diff := cmp.Diff(want, trail); diff != "" {
		t.Errorf("trail mismatch (-want +got):\n%s", diff)
	}
}

func TestTrailWalksClosingSegment(t *testing.T) {
	m := mustMap(closingGrid)

	want := []patrol.Position{
		patrol.P(3, 1), patrol.P(4, 1), patrol.P(4, 2), patrol.P(4, 3),
		patrol.P(3, 3), patrol.P(3, 2), patrol.P(3, 1),
	}
	if diff := cmp.Diff(want, patrol.Trail(m)); diff != "" {
		t.Errorf("trail mismatch (-want +got):\n%s", diff)
	}

	visited := patrol.Visited(m)
	if visited.Len() != 6 {
		t.Errorf("expected 6 visited cells, got %d: %v", visited.Len(), visited.Sorted())
	}
	if !visited.Has(patrol.P(3, 2)) {
		t.Error("cell on the closing segment should be visited")
	}
}

func TestTrailIsContinuous(t *testing.T) {
	trail := patrol.Trail(mustMap(referenceGrid))

	for i := 1; i < len(trail); i++ {
		a, b := trail[i-1], trail[i]
		dx, dy := b.X-a.X, b.Y-a.Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("trail jumps from %v to %v at step %d", a, b, i)
		}
	}
}
