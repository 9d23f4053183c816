package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flowlens/flowlens/core"
	"github.com/flowlens/flowlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyScopeArgs copies the scope selector arguments onto a cloned config.
func applyScopeArgs(cfg *contract.Config, request mcp.CallToolRequest) {
	if a := request.GetString("art", ""); a != "" {
		cfg.ARTs = splitList(a)
	}
	if t := request.GetString("team", ""); t != "" {
		cfg.Teams = splitList(t)
	}
	if p := request.GetString("pi", ""); p != "" {
		cfg.PIs = splitList(p)
	}
	if w := request.GetString("window", ""); w != "" {
		cfg.Window = w
	}
}

// splitList turns a comma-separated argument into trimmed parts.
func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *toolHandler) handleAnalyzeFlow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyScopeArgs(cfg, request)
	cfg.IncludeCompleted = request.GetBool("include_completed", cfg.IncludeCompleted)

	result, err := core.GetAnalysisResult(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBottlenecks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyScopeArgs(cfg, request)
	if t := request.GetFloat("threshold_days", 0); t > 0 {
		cfg.ThresholdDays = t
	}

	entries, err := core.GetBottleneckResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bottleneck analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStuckItems(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyScopeArgs(cfg, request)
	cfg.Stage = request.GetString("stage", cfg.Stage)
	if t := request.GetFloat("threshold_days", 0); t > 0 {
		cfg.ThresholdDays = t
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	items, err := core.GetStuckItemResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stuck-item analysis failed: %v", err)), nil
	}
	if len(items) > cfg.ResultLimit {
		items = items[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPlanningAccuracy(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyScopeArgs(cfg, request)

	result, err := core.GetPlanningResults(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("planning analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
