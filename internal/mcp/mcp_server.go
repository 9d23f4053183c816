// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/flowlens/flowlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Flowlens MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Flowlens Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: analyze_flow ---
	s.AddTool(mcp.NewTool("analyze_flow",
		mcp.WithDescription("Run a full delivery-flow analysis and return the scorecard with dimension scores."),
		mcp.WithString("window", mcp.Description("Time window selector: current_pi, last_pi, last_quarter, last_6_months, last_year or a PI label like 26Q1.")),
		mcp.WithString("art", mcp.Description("Comma-separated ART names to filter by.")),
		mcp.WithString("team", mcp.Description("Comma-separated team names to filter by.")),
		mcp.WithString("pi", mcp.Description("Comma-separated PI labels to filter by.")),
		mcp.WithBoolean("include_completed", mcp.Description("Include items with terminal status (Done, Deployed) in stage analysis.")),
	), h.handleAnalyzeFlow)

	// --- 2. Tool: get_bottlenecks ---
	s.AddTool(mcp.NewTool("get_bottlenecks",
		mcp.WithDescription("Rank workflow stages by bottleneck severity for the selected scope and window."),
		mcp.WithString("window", mcp.Description("Time window selector.")),
		mcp.WithString("art", mcp.Description("Comma-separated ART names to filter by.")),
		mcp.WithString("team", mcp.Description("Comma-separated team names to filter by.")),
		mcp.WithNumber("threshold_days", mcp.Description("Stage-duration threshold in days. Defaults to 30.")),
	), h.handleGetBottlenecks)

	// --- 3. Tool: get_stuck_items ---
	s.AddTool(mcp.NewTool("get_stuck_items",
		mcp.WithDescription("List delivery items whose stage duration exceeds the threshold, worst first."),
		mcp.WithString("window", mcp.Description("Time window selector.")),
		mcp.WithString("stage", mcp.Description("Narrow the search to one workflow stage.")),
		mcp.WithString("team", mcp.Description("Comma-separated team names to filter by.")),
		mcp.WithNumber("threshold_days", mcp.Description("Stage-duration threshold in days. Defaults to 30.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetStuckItems)

	// --- 4. Tool: get_planning_accuracy ---
	s.AddTool(mcp.NewTool("get_planning_accuracy",
		mcp.WithDescription("Compute delivered-vs-committed planning accuracy for the selected scope."),
		mcp.WithString("art", mcp.Description("Comma-separated ART names to filter by.")),
		mcp.WithString("team", mcp.Description("Comma-separated team names to filter by.")),
		mcp.WithString("pi", mcp.Description("Comma-separated PI labels to filter by.")),
	), h.handleGetPlanningAccuracy)

	return s
}

// StartMCPServer starts the Flowlens MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
