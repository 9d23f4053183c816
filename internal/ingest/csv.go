package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/flowlens/flowlens/schema"
)

// Fixed CSV columns for flow records; every remaining header must be a
// known stage name.
const (
	colIssueKey      = "issue_key"
	colART           = "art"
	colTeam          = "team"
	colPI            = "pi"
	colStatus        = "status"
	colTotalLeadtime = "total_leadtime"
	colResolvedDate  = "resolved_date"
)

// Fixed CSV columns for commitment records.
const (
	colPlannedCommitted   = "planned_committed"
	colPlannedUncommitted = "planned_uncommitted"
	colPLCDelivery        = "plc_delivery"
)

// loadFlowRecordsCSV reads issue-flow records from a CSV export. The header
// row names the fixed columns plus one column per stage; an unrecognized
// header is an ingestion error, not a silently dropped column.
func loadFlowRecordsCSV(path string) ([]schema.IssueFlowRecord, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	fixed := map[string]struct{}{
		colIssueKey: {}, colART: {}, colTeam: {}, colPI: {}, colStatus: {},
		colTotalLeadtime: {}, colResolvedDate: {},
	}
	idx := make(map[string]int, len(header))
	var stageCols []string
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		idx[name] = i
		if _, ok := fixed[name]; ok {
			continue
		}
		if _, ok := schema.KnownStages[name]; !ok {
			return nil, fmt.Errorf("%s: unknown column %q (known stages: %s)",
				path, h, strings.Join(schema.AllStages, ", "))
		}
		stageCols = append(stageCols, name)
	}
	if _, ok := idx[colIssueKey]; !ok {
		return nil, fmt.Errorf("%s: missing required column %q", path, colIssueKey)
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]schema.IssueFlowRecord, 0, len(rows))
	for n, row := range rows {
		rec := schema.IssueFlowRecord{
			IssueKey: strings.TrimSpace(cell(row, colIssueKey)),
			ART:      cell(row, colART),
			Team:     cell(row, colTeam),
			PI:       cell(row, colPI),
			Status:   strings.TrimSpace(cell(row, colStatus)),
			Stages:   make(map[string]float64, len(stageCols)),
		}
		for _, stage := range stageCols {
			d, err := parseFloat(cell(row, stage))
			if err != nil {
				return nil, fmt.Errorf("%s row %d: bad duration for stage %q: %w", path, n+2, stage, err)
			}
			if d != 0 {
				rec.Stages[stage] = d
			}
		}
		if raw := strings.TrimSpace(cell(row, colResolvedDate)); raw != "" {
			t, err := parseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
			}
			rec.ResolvedDate = t
		}
		if raw := strings.TrimSpace(cell(row, colTotalLeadtime)); raw != "" {
			lt, err := parseFloat(raw)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: bad total_leadtime: %w", path, n+2, err)
			}
			rec.TotalLeadTime = lt
		} else {
			rec.TotalLeadTime = sumStages(rec.Stages)
		}
		if err := validateFlowRecord(rec); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, n+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// loadCommitmentsCSV reads PI commitment records from a CSV export. Flag
// cells keep their raw string form; normalization happens in FlexBool.
func loadCommitmentsCSV(path string) ([]schema.PICommitmentRecord, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx[colIssueKey]; !ok {
		return nil, fmt.Errorf("%s: missing required column %q", path, colIssueKey)
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]schema.PICommitmentRecord, 0, len(rows))
	for n, row := range rows {
		key := strings.TrimSpace(cell(row, colIssueKey))
		if key == "" {
			return nil, fmt.Errorf("%s row %d: issue_key is required", path, n+2)
		}
		records = append(records, schema.PICommitmentRecord{
			IssueKey:           key,
			ART:                cell(row, colART),
			Team:               cell(row, colTeam),
			PI:                 cell(row, colPI),
			PlannedCommitted:   schema.NewFlexBool(cell(row, colPlannedCommitted)),
			PlannedUncommitted: schema.NewFlexBool(cell(row, colPlannedUncommitted)),
			PLCDelivery:        schema.NewFlexBool(cell(row, colPLCDelivery)),
		})
	}
	return records, nil
}

// readCSV loads all rows of a CSV file and splits off the header.
func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // Ragged exports are common; cells default empty
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}
	return all[1:], all[0], nil
}
