// Package core has core logic for window resolution, aggregation, scoring
// and ranking of delivery-flow data.
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/flowlens/flowlens/internal/ingest"
	"github.com/flowlens/flowlens/internal/iostore"
	"github.com/flowlens/flowlens/internal/outwriter"
	"github.com/flowlens/flowlens/schema"
)

// ExecutorFunc defines the function signature for executing different analysis commands.
type ExecutorFunc func(cfg *contract.Config) error

// analysisInputs holds everything loaded from disk for one run.
type analysisInputs struct {
	records     []schema.IssueFlowRecord
	commitments []schema.PICommitmentRecord
	window      schema.TimeWindow
	calendar    []schema.PIWindow
}

// loadAnalysisInputs reads the flow records, optional commitments and
// optional PI calendar, then resolves the requested window.
func loadAnalysisInputs(cfg *contract.Config) (*analysisInputs, error) {
	source := ingest.NewFileSource()

	records, err := source.LoadFlowRecords(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load flow records: %w", err)
	}

	var commitments []schema.PICommitmentRecord
	if cfg.CommitmentsFile != "" {
		commitments, err = source.LoadCommitments(cfg.CommitmentsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load commitments: %w", err)
		}
	}

	var calendar []schema.PIWindow
	if cfg.CalendarFile != "" {
		calendar, err = source.LoadPICalendar(cfg.CalendarFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load PI calendar: %w", err)
		}
	}

	resolver := NewWindowResolver(calendar)
	window, err := resolver.Resolve(cfg.Window)
	if err != nil {
		return nil, err
	}

	return &analysisInputs{
		records:     records,
		commitments: commitments,
		window:      window,
		calendar:    calendar,
	}, nil
}

// buildRequest turns the validated config and loaded inputs into an engine request.
func buildRequest(cfg *contract.Config, inputs *analysisInputs) AnalysisRequest {
	return AnalysisRequest{
		Records:     inputs.records,
		Commitments: inputs.commitments,
		Scope: ScopeFilter{
			ARTs:  cfg.ARTs,
			Teams: cfg.Teams,
			PIs:   cfg.PIs,
		},
		Window: inputs.window,
		Options: AnalysisOptions{
			ThresholdDays:    cfg.ThresholdDays,
			IncludeCompleted: cfg.IncludeCompleted,
		},
		Mappings:     cfg.Mappings,
		ExtraMetrics: cfg.ExtraMetrics,
	}
}

// GetAnalysisResult runs the full pipeline and returns the result without printing.
// This is shared by the CLI executors and the MCP server.
func GetAnalysisResult(cfg *contract.Config) (*schema.FlowAnalysisResult, error) {
	inputs, err := loadAnalysisInputs(cfg)
	if err != nil {
		return nil, err
	}
	return RunFlowAnalysis(buildRequest(cfg, inputs)), nil
}

// GetBottleneckResults runs the pipeline and returns the bottleneck ranking.
func GetBottleneckResults(cfg *contract.Config) ([]schema.BottleneckEntry, error) {
	result, err := GetAnalysisResult(cfg)
	if err != nil {
		return nil, err
	}
	return result.Bottlenecks, nil
}

// GetStuckItemResults runs the pipeline and returns stuck items, narrowed to
// one stage when the config asks for it.
func GetStuckItemResults(cfg *contract.Config) ([]schema.StuckItem, error) {
	inputs, err := loadAnalysisInputs(cfg)
	if err != nil {
		return nil, err
	}
	req := buildRequest(cfg, inputs)
	pop := NewPopulation(req.Records, req.Scope, req.Window, req.Options)
	if cfg.Stage != "" {
		return StuckItemsForStage(pop, cfg.Stage), nil
	}
	return StuckItems(pop), nil
}

// GetPlanningResults runs the planning-accuracy computation on its own.
func GetPlanningResults(cfg *contract.Config) (schema.PlanningAccuracy, error) {
	if cfg.CommitmentsFile == "" {
		return schema.PlanningAccuracy{}, errors.New("--commitments is required for planning analysis")
	}
	source := ingest.NewFileSource()
	commitments, err := source.LoadCommitments(cfg.CommitmentsFile)
	if err != nil {
		return schema.PlanningAccuracy{}, fmt.Errorf("failed to load commitments: %w", err)
	}
	scope := ScopeFilter{ARTs: cfg.ARTs, Teams: cfg.Teams, PIs: cfg.PIs}
	return CalculatePlanningAccuracy(FilterCommitments(commitments, scope)), nil
}

// GetWindowResults loads and returns the configured PI calendar.
func GetWindowResults(cfg *contract.Config) ([]schema.PIWindow, error) {
	if cfg.CalendarFile == "" {
		return nil, errors.New("--calendar is required to list PI windows")
	}
	source := ingest.NewFileSource()
	return source.LoadPICalendar(cfg.CalendarFile)
}

// ExecuteFlowAnalyze runs the full analysis, persists the scorecard and
// prints results to stdout. It serves as the main entry point for the
// 'analyze' command.
func ExecuteFlowAnalyze(cfg *contract.Config) error {
	start := time.Now()
	result, err := GetAnalysisResult(cfg)
	if err != nil {
		return err
	}

	if store := iostore.GetStore(); store != nil {
		if err := store.Save(result.Scorecard); err != nil {
			contract.LogWarn("Failed to persist scorecard", err)
		}
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteAnalysis(result, cfg, duration)
}

// ExecuteFlowBottlenecks runs the bottleneck ranking and prints results to stdout.
func ExecuteFlowBottlenecks(cfg *contract.Config) error {
	start := time.Now()
	entries, err := GetBottleneckResults(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteBottlenecks(entries, cfg, duration)
}

// ExecuteFlowStuck finds stuck items and prints results to stdout.
func ExecuteFlowStuck(cfg *contract.Config) error {
	start := time.Now()
	items, err := GetStuckItemResults(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteStuckItems(items, cfg, duration)
}

// ExecuteFlowPlanning computes planning accuracy and prints results to stdout.
func ExecuteFlowPlanning(cfg *contract.Config) error {
	start := time.Now()
	result, err := GetPlanningResults(cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WritePlanning(result, cfg, duration)
}

// ExecuteFlowWindows prints the configured PI calendar.
func ExecuteFlowWindows(cfg *contract.Config) error {
	windows, err := GetWindowResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWindows(windows, cfg)
}
