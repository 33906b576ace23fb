package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapview/internal/config"
	"github.com/leapstack-labs/leapview/internal/state"
	"github.com/leapstack-labs/leapview/internal/testutil"
)

const validUnit = `
export const SCENARIO = { key: "demo", name: "Demo", description: "d", version: "1.0.0" }

export default function App() {
	return <Column><Text>Hi</Text></Column>
}
`

func writeUnit(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func testEngine(t *testing.T) (*Engine, *config.Config, *state.SQLiteStore) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{ProjectRoot: root}
	cfg.ApplyDefaults()
	cfg.ResolvePaths()
	require.NoError(t, os.MkdirAll(cfg.SrcDir, 0o755))

	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())

	eng, err := New(Options{Config: cfg, Store: store, Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)
	return eng, cfg, store
}

func TestDiscoverUnits(t *testing.T) {
	eng, cfg, _ := testEngine(t)
	writeUnit(t, cfg.SrcDir, "b.lsx", validUnit)
	writeUnit(t, cfg.SrcDir, "a.lsx", validUnit)
	writeUnit(t, cfg.SrcDir, "notes.txt", "ignored")

	units, err := eng.DiscoverUnits()
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "a.lsx", filepath.Base(units[0]))
	assert.Equal(t, "b.lsx", filepath.Base(units[1]))
}

func TestBuildWritesOutputAndState(t *testing.T) {
	eng, cfg, store := testEngine(t)
	writeUnit(t, cfg.SrcDir, "demo.lsx", validUnit)

	result, err := eng.Build(context.Background(), BuildOptions{Write: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded())

	outputPath := filepath.Join(cfg.OutDir, "demo.json")
	raw, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "demo", doc["key"])
	assert.Equal(t, "1.0.0", doc["version"])

	rec, err := store.GetScenario("demo")
	require.NoError(t, err)
	assert.Equal(t, "Demo", rec.Name)
	assert.Equal(t, outputPath, rec.OutputPath)
}

func TestBuildRecordsPerUnitFailures(t *testing.T) {
	eng, cfg, _ := testEngine(t)
	writeUnit(t, cfg.SrcDir, "good.lsx", validUnit)
	writeUnit(t, cfg.SrcDir, "bad.lsx", `export default () => <Bogus/>`)

	result, err := eng.Build(context.Background(), BuildOptions{Write: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded())
	assert.Equal(t, 1, result.Failed())

	for _, u := range result.Units {
		if filepath.Base(u.Path) == "bad.lsx" {
			assert.ErrorContains(t, u.Err, "Bogus")
		}
	}
}

func TestValidateDoesNotWrite(t *testing.T) {
	eng, cfg, store := testEngine(t)
	writeUnit(t, cfg.SrcDir, "demo.lsx", validUnit)

	result, err := eng.Build(context.Background(), BuildOptions{Write: false})
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded())

	_, err = os.Stat(filepath.Join(cfg.OutDir, "demo.json"))
	assert.True(t, os.IsNotExist(err))

	_, err = store.GetScenario("demo")
	assert.Error(t, err)
}

func TestBuildCollectsWarnings(t *testing.T) {
	eng, cfg, store := testEngine(t)
	// no SCENARIO block: compiles with a generated key and a warning
	writeUnit(t, cfg.SrcDir, "anon.lsx", `export default () => <Screen/>`)

	result, err := eng.Build(context.Background(), BuildOptions{Write: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded())

	unit := result.Units[0]
	require.NotEmpty(t, unit.Warnings)
	assert.Contains(t, unit.Warnings[0], "no SCENARIO metadata block")

	warnings, err := store.ListWarnings(unit.Key)
	require.NoError(t, err)
	require.Len(t, warnings, len(unit.Warnings))
}
