package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/lifeline/internal/sqlite"
	"github.com/mesh-intelligence/lifeline/pkg/types"
)

func TestDataSurvivesAttachCycles(t *testing.T) {
	dataDir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(cfg))
	_, err := b.InsertTimeline(&types.Timeline{
		TimelineID: "t1", UserName: "A", StartAge: 14, EndAge: 18,
	})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// A fresh backend over the same data directory sees the same rows.
	b2 := sqlite.NewBackend()
	require.NoError(t, b2.Attach(cfg))
	t.Cleanup(func() { b2.Detach() })

	got, err := b2.GetTimeline("t1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.UserName)
}

func TestRuleOverridesChangeValidation(t *testing.T) {
	b := sqlite.NewBackend()
	err := b.Attach(types.Config{
		Backend:                types.BackendSQLite,
		DataDir:                t.TempDir(),
		MinimumDurationByLayer: map[int]float64{1: 1.0},
	})
	require.NoError(t, err)
	t.Cleanup(func() { b.Detach() })

	_, err = b.InsertTimeline(&types.Timeline{
		TimelineID: "t1", UserName: "A", StartAge: 14, EndAge: 18,
	})
	require.NoError(t, err)
	layer, err := b.InsertLayer(&types.Layer{
		TimelineID: "t1", LayerNumber: 1, StartAge: 14, EndAge: 18,
	})
	require.NoError(t, err)

	// Two years fails the default tier-1 minimum but passes the override.
	_, err = b.InsertBlock(&types.Block{
		LayerID: layer.LayerID, LayerNumber: 1, StartAge: 14, EndAge: 16, DurationYears: 2.0,
	})
	assert.NoError(t, err)
}

func TestDetachedBackendRefusesOperations(t *testing.T) {
	b := sqlite.NewBackend()

	_, err := b.GetTimeline("t1")
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = b.InsertTimeline(&types.Timeline{TimelineID: "t1", StartAge: 14, EndAge: 18})
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = b.ListLayers("t1")
	assert.ErrorIs(t, err, types.ErrDetached)
}

func TestSelfTestIsIdempotent(t *testing.T) {
	b := newAttachedBackend(t)

	_, err := b.InsertTimeline(&types.Timeline{
		TimelineID: "keep", UserName: "A", StartAge: 14, EndAge: 18,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		report, err := b.SelfTest()
		require.NoError(t, err)
		assert.True(t, report.Passed, "run %d: %+v", i, report.Checks)
	}

	// Existing rows are untouched and no fixtures are left behind.
	timelines, err := b.ListTimelines()
	require.NoError(t, err)
	require.Len(t, timelines, 1)
	assert.Equal(t, "keep", timelines[0].TimelineID)
}
