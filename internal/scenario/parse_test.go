package scenario_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/scenario"
)

func TestParseGrid(t *testing.T) {
	m, err := scenario.ParseString("..#\r\n>..\r\n.#.\r\n\r\n")
	require.NoError(t, err)

	assert.Equal(t, patrol.Bounds{Width: 3, Height: 3}, m.Bounds)
	assert.Equal(t, patrol.Guard{Pos: patrol.P(0, 1), Facing: patrol.Right}, m.Start)
	assert.Equal(t, 2, m.Obstacles.Len())
	assert.True(t, m.Obstacles.Has(patrol.P(2, 0)))
	assert.True(t, m.Obstacles.Has(patrol.P(1, 2)))
	assert.False(t, m.Obstacles.Has(patrol.P(0, 1)))
}

func TestParseGuardFacings(t *testing.T) {
	cases := []struct {
		marker string
		want   patrol.Facing
	}{
		{"^", patrol.Up},
		{"v", patrol.Down},
		{"<", patrol.Left},
		{">", patrol.Right},
	}
	for _, tc := range cases {
		t.Run(tc.marker, func(t *testing.T) {
			m, err := scenario.ParseString("." + tc.marker + ".\n")
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.Start.Facing)
			assert.Equal(t, patrol.P(1, 0), m.Start.Pos)
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		grid string
		err  error
		line int
	}{
		{"Empty", "", scenario.ErrEmptyGrid, 0},
		{"OnlyBlankLines", "\n\n", scenario.ErrEmptyGrid, 0},
		{"NoGuard", "...\n.#.\n", scenario.ErrNoGuard, 0},
		{"TwoGuards", "^..\n..v\n", scenario.ErrMultipleGuards, 2},
		{"Ragged", "^..\n..\n", scenario.ErrNonRectangular, 2},
		{"BlankMiddleRow", "^..\n\n...\n", scenario.ErrNonRectangular, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scenario.ParseString(tc.grid)
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseString(%q) error = %v; want %v", tc.grid, err, tc.err)
			}
			if tc.line == 0 {
				return
			}
			var perr *scenario.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.line, perr.Line)
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	grid := "....#.....\n.........#\n..........\n..#.......\n.......#..\n..........\n.#..^.....\n........#.\n#.........\n......#...\n"

	m := scenario.MustParse(grid)
	assert.Equal(t, grid, scenario.Format(m))
}

func TestNormalize(t *testing.T) {
	got, err := scenario.Normalize("#.^\r\n...\r\n\r\n   \n")
	require.NoError(t, err)
	assert.Equal(t, "#.^\n...\n", got)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { scenario.MustParse("...") })
}
