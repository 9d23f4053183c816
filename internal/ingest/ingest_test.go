package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempFile writes content to a throwaway file with the given name.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadFlowRecordsJSON tests the JSON flow-record loader.
func TestLoadFlowRecordsJSON(t *testing.T) {
	t.Run("valid records", func(t *testing.T) {
		path := writeTempFile(t, "records.json", `[
			{
				"issue_key": "SAART-1",
				"art": "SAART",
				"team": "blue",
				"pi": "26Q1",
				"status": "In Progress",
				"stages": {"in_progress": 12.5, "in_review": 3.0}
			},
			{
				"issue_key": "SAART-2",
				"status": "Done",
				"stages": {"in_progress": 4.0},
				"total_leadtime": 9.5,
				"resolved_date": "2026-02-10"
			}
		]`)

		records, err := NewFileSource().LoadFlowRecords(path)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "SAART-1", records[0].IssueKey)
		// Missing total_leadtime sums the stages.
		assert.InDelta(t, 15.5, records[0].TotalLeadTime, 1e-9)
		assert.True(t, records[0].ResolvedDate.IsZero())

		assert.InDelta(t, 9.5, records[1].TotalLeadTime, 1e-9)
		assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), records[1].ResolvedDate)
	})

	t.Run("unknown stage rejected", func(t *testing.T) {
		path := writeTempFile(t, "records.json",
			`[{"issue_key": "A", "stages": {"qa_triage": 2.0}}]`)
		_, err := NewFileSource().LoadFlowRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown stage")
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		path := writeTempFile(t, "records.json",
			`[{"issue_key": "A", "stages": {"in_progress": -1.0}}]`)
		_, err := NewFileSource().LoadFlowRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative duration")
	})

	t.Run("missing issue key rejected", func(t *testing.T) {
		path := writeTempFile(t, "records.json", `[{"stages": {"in_progress": 1.0}}]`)
		_, err := NewFileSource().LoadFlowRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "issue_key is required")
	})

	t.Run("bad resolved date rejected", func(t *testing.T) {
		path := writeTempFile(t, "records.json",
			`[{"issue_key": "A", "resolved_date": "02/10/2026"}]`)
		_, err := NewFileSource().LoadFlowRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewFileSource().LoadFlowRecords("records.parquet")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported flow record format")
	})
}

// TestLoadFlowRecordsCSV tests the CSV flow-record loader.
func TestLoadFlowRecordsCSV(t *testing.T) {
	t.Run("valid export", func(t *testing.T) {
		path := writeTempFile(t, "records.csv",
			"issue_key,art,team,pi,status,in_progress,in_review,resolved_date\n"+
				"SAART-1,SAART,blue,26Q1,In Progress,12.5,3.0,\n"+
				"SAART-2,SAART,red,26Q1,Done,4.0,0,2026-02-10\n")

		records, err := NewFileSource().LoadFlowRecords(path)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.InDelta(t, 12.5, records[0].Stages["in_progress"], 1e-9)
		assert.InDelta(t, 15.5, records[0].TotalLeadTime, 1e-9)

		// Zero cells mean the stage was never visited.
		_, visited := records[1].Stages["in_review"]
		assert.False(t, visited)
		assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), records[1].ResolvedDate)
	})

	t.Run("unknown column rejected", func(t *testing.T) {
		path := writeTempFile(t, "records.csv",
			"issue_key,story_points\nSAART-1,5\n")
		_, err := NewFileSource().LoadFlowRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown column")
	})

	t.Run("missing issue_key column rejected", func(t *testing.T) {
		path := writeTempFile(t, "records.csv", "art,team\nSAART,blue\n")
		_, err := NewFileSource().LoadFlowRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required column")
	})

	t.Run("empty file rejected", func(t *testing.T) {
		path := writeTempFile(t, "records.csv", "")
		_, err := NewFileSource().LoadFlowRecords(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty file")
	})

	t.Run("ragged rows read missing cells as empty", func(t *testing.T) {
		path := writeTempFile(t, "records.csv",
			"issue_key,art,in_progress\nSAART-1\n")
		records, err := NewFileSource().LoadFlowRecords(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].Stages)
	})
}

// TestLoadCommitments tests both commitment loaders, including the mixed
// flag encodings the tracking system emits.
func TestLoadCommitments(t *testing.T) {
	t.Run("json with mixed flag encodings", func(t *testing.T) {
		path := writeTempFile(t, "commitments.json", `[
			{"issue_key": "A", "pi": "26Q1", "planned_committed": 1, "plc_delivery": "1"},
			{"issue_key": "B", "pi": "26Q1", "planned_committed": "0", "planned_uncommitted": 1},
			{"issue_key": "C", "pi": "26Q1", "planned_committed": " 1 ", "plc_delivery": null}
		]`)

		records, err := NewFileSource().LoadCommitments(path)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.True(t, records[0].PlannedCommitted.Bool())
		assert.True(t, records[0].PLCDelivery.Bool())
		assert.False(t, records[1].PlannedCommitted.Bool())
		assert.True(t, records[1].PlannedUncommitted.Bool())
		assert.True(t, records[2].PlannedCommitted.Bool())
		assert.False(t, records[2].PLCDelivery.Bool())
	})

	t.Run("csv flags keep raw cells", func(t *testing.T) {
		path := writeTempFile(t, "commitments.csv",
			"issue_key,art,team,pi,planned_committed,planned_uncommitted,plc_delivery\n"+
				"A,SAART,blue,26Q1,1,0,1\n"+
				"B,SAART,blue,26Q1, 1 ,,\n")

		records, err := NewFileSource().LoadCommitments(path)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.True(t, records[0].PlannedCommitted.Bool())
		assert.True(t, records[1].PlannedCommitted.Bool())
		assert.False(t, records[1].PLCDelivery.Bool())
	})

	t.Run("missing issue key rejected", func(t *testing.T) {
		path := writeTempFile(t, "commitments.json", `[{"pi": "26Q1"}]`)
		_, err := NewFileSource().LoadCommitments(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "issue_key is required")
	})
}

// FuzzParseDate checks the parser never panics and accepts both layouts.
func FuzzParseDate(f *testing.F) {
	f.Add("2026-02-10")
	f.Add("2026-02-10T15:04:05Z")
	f.Add("not a date")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		_, err := parseDate(s)
		if err == nil {
			return
		}
		assert.Contains(t, err.Error(), "invalid date")
	})
}
