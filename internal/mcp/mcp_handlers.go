package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/core/parser"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	loader  contract.ReportLoader
}

// parseSummary is the parse_report payload. The raw samples are left out to
// keep responses small.
type parseSummary struct {
	Source      string                `json:"source"`
	Dialect     schema.Dialect        `json:"dialect"`
	Metadata    schema.ReportMetadata `json:"metadata"`
	Sections    []schema.SectionCount `json:"sections"`
	Diagnostics schema.Diagnostics    `json:"diagnostics"`
}

// load parses the dump named by the required path argument.
func (h *toolHandler) load(ctx context.Context, request mcp.CallToolRequest) (*parser.Result, *mcp.CallToolResult) {
	path := request.GetString("path", "")
	if path == "" {
		return nil, mcp.NewToolResultError("path is required")
	}
	res, err := h.loader.Load(ctx, path)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err))
	}
	return res, nil
}

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleParseReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, errResult := h.load(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(parseSummary{
		Source:      res.Model.Source,
		Dialect:     res.Model.Dialect(),
		Metadata:    res.Model.Metadata,
		Sections:    res.Model.SectionCounts(),
		Diagnostics: res.Diagnostics,
	})
}

func (h *toolHandler) handleAnalyzeReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetString("targets", ""); s != "" {
		targets, err := contract.ParseTargets(s)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
		}
		cfg.Targets = targets
	}

	res, errResult := h.load(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	result, err := core.AnalyzeReport(res, cfg.Targets, core.Options{Tiers: cfg.Tiers})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(struct {
		*schema.AnalysisResult
		Ranking []schema.RankedComplexity `json:"ranking"`
	}{result, schema.RankTargets(result.Targets)})
}

func (h *toolHandler) handleSGAAdvice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, errResult := h.load(ctx, request)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(core.OptimalSGA(res.Model.SGAAdvice))
}
