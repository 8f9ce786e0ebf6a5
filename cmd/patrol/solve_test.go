package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/guard-patrol/internal/patrol"
	"github.com/vovakirdan/guard-patrol/internal/scenario"
	"github.com/vovakirdan/guard-patrol/internal/search"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

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

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSolveScenarioStrategies(t *testing.T) {
	sc, err := scenario.LoadFile(writeScenario(t, "lab.txt", referenceGrid))
	require.NoError(t, err)

	for _, name := range []string{search.NameSequential, search.NameParallel} {
		t.Run(name, func(t *testing.T) {
			res, err := solveScenario(context.Background(), sc, solveRequest{Strategy: name, Workers: 3})
			require.NoError(t, err)

			assert.Equal(t, 41, res.Report.Visited)
			assert.Equal(t, 6, res.Report.LoopObstacles)
			assert.Equal(t, name, res.Report.Strategy)
			assert.Equal(t, 10, res.Map.Bounds.Width)
		})
	}
}

func TestSolveScenarioWorkers(t *testing.T) {
	sc, err := scenario.LoadFile(writeScenario(t, "lab.txt", referenceGrid))
	require.NoError(t, err)

	res, err := solveScenario(context.Background(), sc, solveRequest{Strategy: search.NameParallel, Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Workers)

	res, err = solveScenario(context.Background(), sc, solveRequest{Strategy: search.NameSequential})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Workers)
}

func TestSolveScenarioErrors(t *testing.T) {
	good, err := scenario.LoadFile(writeScenario(t, "lab.txt", referenceGrid))
	require.NoError(t, err)

	_, err = solveScenario(context.Background(), good, solveRequest{Strategy: "no-such-strategy"})
	assert.Error(t, err)

	bad := scenario.Scenario{ID: "bad", Grid: "....\n....\n"}
	_, err = solveScenario(context.Background(), bad, solveRequest{Strategy: search.NameSequential})
	assert.Error(t, err, "grid without a guard should fail")
}

func TestSolveScenarioCancelled(t *testing.T) {
	sc, err := scenario.LoadFile(writeScenario(t, "lab.txt", referenceGrid))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = solveScenario(ctx, sc, solveRequest{Strategy: search.NameSequential})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckExpected(t *testing.T) {
	sc := scenario.Scenario{ID: "lab", Expected: &scenario.Expected{Visited: 41, Loops: 6}}

	assert.NoError(t, checkExpected(sc, patrol.Report{Visited: 41, LoopObstacles: 6}))
	assert.Error(t, checkExpected(sc, patrol.Report{Visited: 41, LoopObstacles: 5}))
	assert.Error(t, checkExpected(sc, patrol.Report{Visited: 40, LoopObstacles: 6}))

	sc.Expected = nil
	assert.NoError(t, checkExpected(sc, patrol.Report{}), "no expectation always passes")
}

func TestNewRunRecordsReport(t *testing.T) {
	sc, err := scenario.LoadFile(writeScenario(t, "lab.txt", referenceGrid))
	require.NoError(t, err)

	res, err := solveScenario(context.Background(), sc, solveRequest{Strategy: search.NameSequential})
	require.NoError(t, err)

	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	saved, err := store.SaveRun(newRun(sc, res))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	latest, err := store.LatestByHash(sc.Hash())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "lab", latest.ScenarioID)
	assert.Equal(t, 41, latest.Visited)
	assert.Equal(t, 6, latest.Loops)
	assert.Equal(t, search.NameSequential, latest.Strategy)
	assert.Equal(t, 10, latest.Width)
	assert.Equal(t, 10, latest.Height)
}

func TestPrintCounts(t *testing.T) {
	var buf bytes.Buffer
	printCounts(&buf, 41, 6)
	assert.Equal(t, "visited: 41\nloops: 6\n", buf.String())
}

func TestSetupAppliesFlagOverrides(t *testing.T) {
	cfgPath := writeScenario(t, "patrol.yaml", "search:\n  strategy: sequential\nlog:\n  level: warn\n")

	flagConfig = cfgPath
	flagDBPath = "/tmp/override.db"
	flagScenarioDir = "./elsewhere"
	flagLogLevel = "debug"
	t.Cleanup(func() {
		flagConfig, flagDBPath, flagScenarioDir, flagLogLevel = "", "", "", ""
	})

	require.NoError(t, setup(nil, nil))

	assert.Equal(t, "sequential", appCfg.Search.Strategy)
	assert.Equal(t, "/tmp/override.db", appCfg.Storage.Path)
	assert.Equal(t, "./elsewhere", appCfg.Scenarios.Dir)
	assert.Equal(t, "debug", appCfg.Log.Level)
	require.NotNil(t, logger)
}

func TestSetupRejectsBadLogLevel(t *testing.T) {
	flagConfig = writeScenario(t, "patrol.yaml", "search:\n  strategy: parallel\n")
	flagLogLevel = "loud"
	t.Cleanup(func() {
		flagConfig, flagLogLevel = "", ""
	})

	assert.Error(t, setup(nil, nil))
}
