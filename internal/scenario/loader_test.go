package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/guard-patrol/internal/scenario"
	"github.com/vovakirdan/guard-patrol/internal/scenario/formats"
)

const testdataDir = "testdata/scenarios"

func TestLoaderLoadAll(t *testing.T) {
	loader := scenario.NewLoader(testdataDir)

	all, err := loader.LoadAll()
	require.NoError(t, err)

	// broken.yaml is skipped, notes.md is not a scenario format
	ids := make([]string, len(all))
	for i, sc := range all {
		ids[i] = sc.ID
	}
	assert.Equal(t, []string{"reference", "square", "top_row"}, ids)
}

func TestLoaderLoadReference(t *testing.T) {
	sc, err := scenario.NewLoader(testdataDir).LoadByID("reference")
	require.NoError(t, err)

	assert.Equal(t, "Reference lab", sc.Name)
	require.NotNil(t, sc.Expected)
	assert.Equal(t, 41, sc.Expected.Visited)
	assert.Equal(t, 6, sc.Expected.Loops)
	assert.Equal(t, "worked example", sc.Metadata["source"])

	m, err := sc.Map()
	require.NoError(t, err)
	assert.Equal(t, 10, m.Bounds.Width)
	assert.Equal(t, 10, m.Bounds.Height)
	assert.Equal(t, 8, m.Obstacles.Len())
}

func TestLoaderTextScenario(t *testing.T) {
	sc, err := scenario.LoadFile(filepath.Join(testdataDir, "square.txt"))
	require.NoError(t, err)

	assert.Equal(t, "square", sc.ID)
	assert.Equal(t, "square", sc.Name)
	assert.Nil(t, sc.Expected)
}

func TestLoaderNotFound(t *testing.T) {
	_, err := scenario.NewLoader(testdataDir).LoadByID("nonexistent")
	assert.Error(t, err)
}

func TestLoaderMissingRoot(t *testing.T) {
	_, err := scenario.NewLoader(filepath.Join(t.TempDir(), "missing")).LoadAll()
	assert.Error(t, err)
}

func TestScenarioHashIgnoresLineEndings(t *testing.T) {
	a := scenario.Scenario{ID: "a", Grid: "#.^\n...\n"}
	b := scenario.Scenario{ID: "b", Grid: "#.^\r\n...\r\n\r\n"}
	c := scenario.Scenario{ID: "c", Grid: "#.>\n...\n"}

	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestResolve(t *testing.T) {
	sc, err := scenario.Resolve(filepath.Join(testdataDir, "top_row.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, "top_row", sc.ID)

	sc, err = scenario.Resolve("top_row", testdataDir)
	require.NoError(t, err)
	assert.Equal(t, "Top row turn", sc.Name)

	_, err = scenario.Resolve("top_row", "")
	assert.Error(t, err)
}

func TestYAMLRoundTrip(t *testing.T) {
	sc := formats.Scenario{
		ID:       "tiny",
		Name:     "Tiny",
		Grid:     ".^.\n...\n",
		Expected: &formats.Expected{Visited: 1, Loops: 0},
	}
	data, err := formats.MarshalYAML(sc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := scenario.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sc.ID, loaded.ID)
	assert.Equal(t, sc.Grid, loaded.Grid)
	assert.Equal(t, sc.Expected, loaded.Expected)
}

func TestParseYAMLWithoutGrid(t *testing.T) {
	_, err := formats.ParseYAML([]byte("id: empty\nname: Empty\n"))
	assert.ErrorIs(t, err, formats.ErrNoGrid)
}

func TestLoadFileWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, []byte("....\n.^..\n"), 0o644))

	sc, err := scenario.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "input", sc.ID)

	m, err := sc.Map()
	require.NoError(t, err)
	assert.Equal(t, 4, m.Bounds.Width)
	assert.Equal(t, 2, m.Bounds.Height)
}
