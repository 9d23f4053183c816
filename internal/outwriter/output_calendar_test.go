package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
)

func calendarFixture() []schema.PIWindow {
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

func TestPrintWindowResults(t *testing.T) {
	windows := calendarFixture()

	t.Run("csv output preserves calendar order", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "windows.csv")
		cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outFile}

		require.NoError(t, PrintWindowResults(windows, cfg))

		f, err := os.Open(outFile)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"name", "start_date", "end_date"}, rows[0])
		assert.Equal(t, []string{"25Q4", "2025-10-01", "2025-12-31"}, rows[1])
		assert.Equal(t, []string{"26Q1", "2026-01-01", "2026-03-31"}, rows[2])
	})

	t.Run("json output round-trips the calendar", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "windows.json")
		cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outFile}

		require.NoError(t, PrintWindowResults(windows, cfg))

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)

		var decoded []schema.PIWindow
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "25Q4", decoded[0].Name)
		assert.Equal(t, "26Q1", decoded[1].Name)
		assert.True(t, decoded[1].StartDate.Equal(windows[1].StartDate))
	})

	t.Run("table output renders without error", func(t *testing.T) {
		cfg := &contract.Config{Output: schema.TextOut}

		require.NoError(t, PrintWindowResults(windows, cfg))
	})
}
