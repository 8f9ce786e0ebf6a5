// Package scenario turns text grids and scenario files into patrol maps.
// This package depends on patrol but patrol does not depend on scenario.
package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// Sentinel errors for grid parsing.
var (
	// ErrEmptyGrid indicates the input has no rows or no columns.
	ErrEmptyGrid = errors.New("scenario: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("scenario: all rows must have the same length")
	// ErrNoGuard indicates no guard marker was found.
	ErrNoGuard = errors.New("scenario: no guard marker (^ v < >) in grid")
	// ErrMultipleGuards indicates more than one guard marker was found.
	ErrMultipleGuards = errors.New("scenario: more than one guard marker in grid")
)

// ParseError ties a parse failure to a 1-based grid line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a text grid: '#' is an obstacle, one of "^ v < >" is the
// guard with its facing, any other character is floor. Trailing carriage
// returns and trailing blank lines are ignored.
func Parse(r io.Reader) (patrol.Map, error) {
	lines, err := readLines(r)
	if err != nil {
		return patrol.Map{}, err
	}
	return parseLines(lines)
}

// ParseString parses a text grid held in a string.
func ParseString(s string) (patrol.Map, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is like ParseString but panics on error.
// Intended for tests and fixed fixtures.
func MustParse(s string) patrol.Map {
	m, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Normalize returns the grid text with carriage returns and trailing blank
// lines removed, one row per line and a final newline.
func Normalize(s string) (string, error) {
	lines, err := readLines(strings.NewReader(s))
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scenario: reading grid: %w", err)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func parseLines(lines []string) (patrol.Map, error) {
	if len(lines) == 0 || lines[0] == "" {
		return patrol.Map{}, ErrEmptyGrid
	}

	width := utf8.RuneCountInString(lines[0])
	idx := patrol.NewObstacleIndex()
	var guard *patrol.Guard

	for y, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			return patrol.Map{}, &ParseError{
				Line: y + 1,
				Err:  fmt.Errorf("%w: got %d, want %d", ErrNonRectangular, n, width),
			}
		}

		x := 0
		for _, r := range line {
			pos := patrol.P(x, y)
			if r == patrol.RuneObstacle {
				idx.Insert(pos)
			} else if facing, ok := patrol.FacingFromRune(r); ok {
				if guard != nil {
					return patrol.Map{}, &ParseError{
						Line: y + 1,
						Err:  fmt.Errorf("%w: %s and %s", ErrMultipleGuards, guard.Pos, pos),
					}
				}
				guard = &patrol.Guard{Pos: pos, Facing: facing}
			}
			x++
		}
	}

	if guard == nil {
		return patrol.Map{}, ErrNoGuard
	}

	return patrol.Map{
		Bounds:    patrol.Bounds{Width: width, Height: len(lines)},
		Obstacles: idx,
		Start:     *guard,
	}, nil
}

// Format writes the map back as a text grid.
func Format(m patrol.Map) string {
	return patrol.RenderASCII(m, nil, nil)
}
