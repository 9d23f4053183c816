package iostore

import (
	"testing"
	"time"

	"github.com/flowlens/flowlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScorecard(id string, createdAt time.Time) *schema.Scorecard {
	return &schema.Scorecard{
		ID:           id,
		Scope:        "team",
		ScopeID:      "blue",
		WindowStart:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		OverallScore: 72.5,
		Dimensions: map[schema.Dimension]float64{
			schema.FlowDimension:           80.0,
			schema.PredictabilityDimension: 65.0,
		},
		Metrics:   map[string]float64{"flow_efficiency": 41.2, "stuck_ratio": 0.1},
		CreatedAt: createdAt,
	}
}

func TestScorecardStore_NoneBackend(t *testing.T) {
	store, err := NewScorecardStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	assert.NoError(t, store.Save(sampleScorecard("a", time.Now())))

	records, err := store.List(10)
	assert.NoError(t, err)
	assert.Nil(t, records)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestScorecardStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewScorecardStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(sampleScorecard("first", base)))
	require.NoError(t, store.Save(sampleScorecard("second", base.Add(time.Hour))))
	require.NoError(t, store.Save(sampleScorecard("third", base.Add(2*time.Hour))))

	t.Run("list is newest first and honors the limit", func(t *testing.T) {
		records, err := store.List(2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "third", records[0].ID)
		assert.Equal(t, "second", records[1].ID)
	})

	t.Run("roundtrip preserves fields", func(t *testing.T) {
		records, err := store.List(10)
		require.NoError(t, err)
		require.Len(t, records, 3)

		rec := records[0]
		assert.Equal(t, "team", rec.Scope)
		assert.Equal(t, "blue", rec.ScopeID)
		assert.InDelta(t, 72.5, rec.OverallScore, 1e-9)
		assert.InDelta(t, 80.0, rec.DimensionScores[schema.FlowDimension], 1e-9)
		assert.InDelta(t, 41.2, rec.Metrics["flow_efficiency"], 1e-9)
		assert.True(t, rec.WindowStart.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, rec.CreatedAt.Equal(base.Add(2*time.Hour)))
	})

	t.Run("export listing is oldest first", func(t *testing.T) {
		records, err := store.GetAllScorecards()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "first", records[0].ID)
		assert.Equal(t, "third", records[2].ID)
	})

	t.Run("status reflects stored rows", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, 3, status.TotalScorecards)
		assert.True(t, status.LastCreatedAt.Equal(base.Add(2*time.Hour)))
		assert.True(t, status.OldestCreatedAt.Equal(base))
	})

	t.Run("clear empties the history", func(t *testing.T) {
		require.NoError(t, store.Clear())
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Zero(t, status.TotalScorecards)
	})
}

func TestScorecardStore_UnsupportedBackend(t *testing.T) {
	_, err := NewScorecardStore(schema.StoreBackend("oracle"), "")
	assert.Error(t, err)
}
