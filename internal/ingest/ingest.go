// Package ingest shapes external delivery-flow exports into engine inputs.
// Malformed records (negative durations, unknown stage names) are rejected
// here with descriptive errors so the engine never sees corrupt data.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/schema"
)

// Accepted layouts for date fields in CSV and JSON inputs.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// FileSource loads engine inputs from local CSV/JSON/YAML files.
type FileSource struct{}

var _ contract.RecordSource = FileSource{} // Compile-time check

// NewFileSource returns the default file-based record source.
func NewFileSource() FileSource {
	return FileSource{}
}

// LoadFlowRecords reads issue-flow records from a CSV or JSON file,
// dispatching on the file extension.
func (FileSource) LoadFlowRecords(path string) ([]schema.IssueFlowRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadFlowRecordsCSV(path)
	case ".json":
		return loadFlowRecordsJSON(path)
	default:
		return nil, fmt.Errorf("unsupported flow record format %q (want .csv or .json)", filepath.Ext(path))
	}
}

// LoadCommitments reads PI commitment records from a CSV or JSON file.
func (FileSource) LoadCommitments(path string) ([]schema.PICommitmentRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCommitmentsCSV(path)
	case ".json":
		return loadCommitmentsJSON(path)
	default:
		return nil, fmt.Errorf("unsupported commitment format %q (want .csv or .json)", filepath.Ext(path))
	}
}

// flowRecordJSON is the wire shape of one issue-flow record.
type flowRecordJSON struct {
	IssueKey      string             `json:"issue_key"`
	ART           string             `json:"art"`
	Team          string             `json:"team"`
	PI            string             `json:"pi"`
	Status        string             `json:"status"`
	Stages        map[string]float64 `json:"stages"`
	TotalLeadTime *float64           `json:"total_leadtime"`
	ResolvedDate  string             `json:"resolved_date"`
}

// loadFlowRecordsJSON decodes a JSON array of issue-flow records.
func loadFlowRecordsJSON(path string) ([]schema.IssueFlowRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow records: %w", err)
	}

	var raw []flowRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse flow records in %s: %w", path, err)
	}

	records := make([]schema.IssueFlowRecord, 0, len(raw))
	for i, r := range raw {
		rec := schema.IssueFlowRecord{
			IssueKey: r.IssueKey,
			ART:      r.ART,
			Team:     r.Team,
			PI:       r.PI,
			Status:   r.Status,
			Stages:   r.Stages,
		}
		if rec.Stages == nil {
			rec.Stages = map[string]float64{}
		}
		if r.ResolvedDate != "" {
			t, err := parseDate(r.ResolvedDate)
			if err != nil {
				return nil, fmt.Errorf("record %d (%s): %w", i, r.IssueKey, err)
			}
			rec.ResolvedDate = t
		}
		if r.TotalLeadTime != nil {
			rec.TotalLeadTime = *r.TotalLeadTime
		} else {
			rec.TotalLeadTime = sumStages(rec.Stages)
		}
		if err := validateFlowRecord(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// validateFlowRecord enforces the ingestion invariants: known stage names
// and non-negative durations.
func validateFlowRecord(r schema.IssueFlowRecord) error {
	if r.IssueKey == "" {
		return fmt.Errorf("issue_key is required")
	}
	for stage, d := range r.Stages {
		if _, ok := schema.KnownStages[stage]; !ok {
			return fmt.Errorf("issue %s: unknown stage %q (known stages: %s)",
				r.IssueKey, stage, strings.Join(schema.AllStages, ", "))
		}
		if d < 0 {
			return fmt.Errorf("issue %s: negative duration %.2f for stage %q", r.IssueKey, d, stage)
		}
	}
	if r.TotalLeadTime < 0 {
		return fmt.Errorf("issue %s: negative total_leadtime %.2f", r.IssueKey, r.TotalLeadTime)
	}
	return nil
}

// commitmentJSON is the wire shape of one PI commitment record.
type commitmentJSON struct {
	IssueKey           string         `json:"issue_key"`
	ART                string         `json:"art"`
	Team               string         `json:"team"`
	PI                 string         `json:"pi"`
	PlannedCommitted   schema.FlexBool `json:"planned_committed"`
	PlannedUncommitted schema.FlexBool `json:"planned_uncommitted"`
	PLCDelivery        schema.FlexBool `json:"plc_delivery"`
}

// loadCommitmentsJSON decodes a JSON array of commitment records. The flag
// fields tolerate numeric and string encodings via FlexBool.
func loadCommitmentsJSON(path string) ([]schema.PICommitmentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read commitments: %w", err)
	}

	var raw []commitmentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse commitments in %s: %w", path, err)
	}

	records := make([]schema.PICommitmentRecord, 0, len(raw))
	for i, r := range raw {
		if r.IssueKey == "" {
			return nil, fmt.Errorf("commitment %d: issue_key is required", i)
		}
		records = append(records, schema.PICommitmentRecord{
			IssueKey:           r.IssueKey,
			ART:                r.ART,
			Team:               r.Team,
			PI:                 r.PI,
			PlannedCommitted:   r.PlannedCommitted,
			PlannedUncommitted: r.PlannedUncommitted,
			PLCDelivery:        r.PLCDelivery,
		})
	}
	return records, nil
}

// sumStages returns the total days across all stages.
func sumStages(stages map[string]float64) float64 {
	var total float64
	for _, d := range stages {
		total += d
	}
	return total
}

// parseDate tries the accepted date layouts in order.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want RFC3339 or YYYY-MM-DD)", s)
}

// parseFloat parses a duration cell, treating empty as zero.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
