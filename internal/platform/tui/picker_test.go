package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/guard-patrol/internal/scenario"
)

func testScenarios() []scenario.Scenario {
	return []scenario.Scenario{
		{ID: "reference", Name: "Reference", Grid: referenceGrid, Expected: &scenario.Expected{Visited: 41, Loops: 6}},
		{ID: "square", Name: "Square", Grid: squareGrid},
		{ID: "broken", Name: "Broken", Grid: "...\n...\n"},
	}
}

func updatePicker(t *testing.T, m PickerModel, msg any) PickerModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(PickerModel)
	require.True(t, ok)
	return pm
}

func TestPickerNavigateAndSelect(t *testing.T) {
	m := NewPickerModel(testScenarios(), 80, 24)

	m = updatePicker(t, m, keyUp)
	assert.Nil(t, m.Selected())

	m = updatePicker(t, m, keyDown)
	m = updatePicker(t, m, keyDown)
	m = updatePicker(t, m, keyDown) // clamps at the last item
	m = updatePicker(t, m, keyUp)
	m = updatePicker(t, m, keyEnter)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "square", m.Selected().ID)
}

func TestPickerHistoryAndQuit(t *testing.T) {
	m := NewPickerModel(testScenarios(), 80, 24)

	m = updatePicker(t, m, keyTab)
	assert.True(t, m.WantsHistory())

	m = m.WithMessage("oops")
	assert.False(t, m.WantsHistory())
	assert.Contains(t, m.View(), "oops")

	next, cmd := m.Update(keyRune('q'))
	assert.True(t, next.(PickerModel).IsQuitting())
	assert.NotNil(t, cmd)
}

func TestPickerView(t *testing.T) {
	view := NewPickerModel(testScenarios(), 100, 24).View()

	assert.Contains(t, view, "Reference  10x10  (41 visited, 6 loops)")
	assert.Contains(t, view, "Square  5x5")
	assert.Contains(t, view, "Broken")
	assert.NotContains(t, view, "Broken  3x2", "unparsable grids show no size")

	assert.Contains(t, NewPickerModel(nil, 80, 24).View(), "No scenarios found.")
}
