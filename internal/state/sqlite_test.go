package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func testRecord(key string) *ScenarioRecord {
	return &ScenarioRecord{
		Key:         key,
		Name:        "Demo",
		Description: "demo scenario",
		Version:     "1.0.0",
		SourcePath:  "src/demo.lsx",
		OutputPath:  "dist/" + key + ".json",
		CompiledAt:  time.Now().UTC(),
		Duration:    42 * time.Millisecond,
	}
}

func TestRecordAndGetScenario(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordScenario(testRecord("demo"), nil))

	got, err := store.GetScenario("demo")
	require.NoError(t, err)
	assert.Equal(t, "Demo", got.Name)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, 42*time.Millisecond, got.Duration)
}

func TestGetScenarioNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetScenario("missing")
	assert.ErrorContains(t, err, "scenario not found")
}

func TestRecordScenarioUpserts(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordScenario(testRecord("demo"), nil))

	updated := testRecord("demo")
	updated.Name = "Renamed"
	require.NoError(t, store.RecordScenario(updated, nil))

	all, err := store.ListScenarios()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Renamed", all[0].Name)
}

func TestListScenariosOrdered(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordScenario(testRecord("zeta"), nil))
	require.NoError(t, store.RecordScenario(testRecord("alpha"), nil))

	all, err := store.ListScenarios()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Key)
	assert.Equal(t, "zeta", all[1].Key)
}

func TestWarningsReplacedOnRecompile(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordScenario(testRecord("demo"), []string{"a", "b"}))
	require.NoError(t, store.RecordScenario(testRecord("demo"), []string{"c"}))

	warnings, err := store.ListWarnings("demo")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "c", warnings[0].Message)
}

func TestDeleteScenarioCascadesWarnings(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.RecordScenario(testRecord("demo"), []string{"w"}))
	require.NoError(t, store.DeleteScenario("demo"))

	warnings, err := store.ListWarnings("demo")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestMigrationVersion(t *testing.T) {
	store := openTestStore(t)

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
