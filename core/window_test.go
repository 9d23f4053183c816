package core

import (
	"testing"
	"time"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins window resolution for deterministic assertions.
var fixedNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

var fixedClock contract.Clock = func() time.Time { return fixedNow }

func newTestResolver(windows []schema.PIWindow) *WindowResolver {
	r := NewWindowResolver(windows)
	r.now = fixedClock
	return r
}

func testCalendar() []schema.PIWindow {
	return []schema.PIWindow{
		{
			Name:      "25Q4",
			StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:      "26Q1",
			StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}
}

// TestResolveRelativeSelectors tests the fixed-length rolling windows.
func TestResolveRelativeSelectors(t *testing.T) {
	r := newTestResolver(nil)

	tests := []struct {
		selector string
		length   time.Duration
	}{
		{"current_pi", 5 * 7 * 24 * time.Hour},
		{"last_pi", 10 * 7 * 24 * time.Hour},
		{"last_quarter", 13 * 7 * 24 * time.Hour},
		{"last_6_months", 180 * 24 * time.Hour},
		{"last_year", 365 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			w, err := r.Resolve(tt.selector)
			require.NoError(t, err)
			assert.Equal(t, tt.selector, w.Label)
			assert.Equal(t, fixedNow, w.End)
			assert.Equal(t, fixedNow.Add(-tt.length), w.Start)
		})
	}
}

// TestResolvePILabel tests named-window lookup against the calendar.
func TestResolvePILabel(t *testing.T) {
	r := newTestResolver(testCalendar())

	t.Run("known label resolves to half-open range", func(t *testing.T) {
		w, err := r.Resolve("26Q1")
		require.NoError(t, err)
		assert.Equal(t, "26Q1", w.Label)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
		// End widens one day past the inclusive calendar end.
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("last calendar day is inside the window", func(t *testing.T) {
		w, err := r.Resolve("26Q1")
		require.NoError(t, err)
		assert.True(t, w.Contains(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)))
		assert.False(t, w.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("unknown label yields ErrWindowNotFound", func(t *testing.T) {
		_, err := r.Resolve("27Q9")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrWindowNotFound)
	})

	t.Run("lookup is case-sensitive and exact", func(t *testing.T) {
		_, err := r.Resolve("26q1")
		assert.ErrorIs(t, err, ErrWindowNotFound)
	})
}

// TestResolveDate tests date-to-PI classification.
func TestResolveDate(t *testing.T) {
	r := newTestResolver(testCalendar())

	t.Run("date inside a PI", func(t *testing.T) {
		w, ok := r.ResolveDate(time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, "26Q1", w.Name)
	})

	t.Run("boundary days are inclusive", func(t *testing.T) {
		w, ok := r.ResolveDate(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, "26Q1", w.Name)
	})

	t.Run("uncovered date reports no match", func(t *testing.T) {
		_, ok := r.ResolveDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.False(t, ok)
	})

	t.Run("overlapping windows resolve in calendar order", func(t *testing.T) {
		overlapping := append(testCalendar(), schema.PIWindow{
			Name:      "26Q1-extension",
			StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		})
		ro := newTestResolver(overlapping)
		w, ok := ro.ResolveDate(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
		require.True(t, ok)
		assert.Equal(t, "26Q1", w.Name)
	})
}
