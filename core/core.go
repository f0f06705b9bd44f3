// Package core has core logic for analysis, scoring and sizing.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/awrlens/core/parser"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/internal/outwriter"
	"github.com/huangsam/awrlens/internal/parquet"
	"github.com/huangsam/awrlens/schema"
	"go.uber.org/zap"
)

// ErrNoReport is returned when a command that needs a dump runs without one.
var ErrNoReport = errors.New("a report path is required")

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) error

// writer renders every command result.
var writer = outwriter.NewOutWriter()

// loadReport parses the configured report through loader.
func loadReport(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) (*parser.Result, error) {
	if cfg.ReportPath == "" {
		return nil, ErrNoReport
	}
	res, err := loader.Load(ctx, cfg.ReportPath)
	if err != nil {
		return nil, err
	}
	loggerFrom(ctx).Debug("report loaded",
		zap.String("path", cfg.ReportPath),
		zap.String("dialect", string(res.Model.Dialect())),
		zap.Int("diagnostics", len(res.Diagnostics)))
	return res, nil
}

// analyzeReport parses the configured report and scores the configured targets.
func analyzeReport(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) (*schema.AnalysisResult, error) {
	res, err := loadReport(ctx, cfg, loader)
	if err != nil {
		return nil, err
	}
	return AnalyzeReport(res, cfg.Targets, Options{Tiers: cfg.Tiers})
}

// ExecuteParse parses a dump and prints its sections and diagnostics.
func ExecuteParse(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) error {
	res, err := loadReport(ctx, cfg, loader)
	if err != nil {
		return err
	}
	return writer.WriteReport(res.Model, res.Diagnostics, cfg)
}

// ExecuteAnalyze scores every configured target and prints the ranking.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) error {
	result, err := analyzeReport(ctx, cfg, loader)
	if err != nil {
		return err
	}
	return writer.WriteAnalysis(result, cfg)
}

// ExecuteSGA prints the SGA sizing advice of a dump.
func ExecuteSGA(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) error {
	res, err := loadReport(ctx, cfg, loader)
	if err != nil {
		return err
	}
	return writer.WriteSGA(res.Model.Source, OptimalSGA(res.Model.SGAAdvice), cfg)
}

// ExecuteCheck scores the configured targets against their maximum scores.
// The result is always printed; ErrCheckFailed is returned when a target fails.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) error {
	result, err := analyzeReport(ctx, cfg, loader)
	if err != nil {
		return err
	}
	check := BuildCheckResult(result, cfg.MaxScores)
	if err := writer.WriteCheck(check, cfg); err != nil {
		return err
	}
	if !check.Passed {
		return fmt.Errorf("%w: %d target(s) above their maximum score", ErrCheckFailed, len(check.Failed()))
	}
	return nil
}

// ExecuteExport writes the performance, memory and wait event samples to Parquet.
// The output file setting is the path prefix; it defaults to the report path
// without its extension.
func ExecuteExport(ctx context.Context, cfg *contract.Config, loader contract.ReportLoader) error {
	res, err := loadReport(ctx, cfg, loader)
	if err != nil {
		return err
	}
	prefix := ExportPrefix(cfg)
	paths, err := parquet.ExportReport(res.Model, prefix)
	if err != nil {
		return fmt.Errorf("parquet export failed: %w", err)
	}
	for _, p := range []string{paths.Performance, paths.Memory, paths.WaitEvents} {
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", p)
	}
	return nil
}

// ExportPrefix returns the Parquet path prefix for the configured report.
func ExportPrefix(cfg *contract.Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return strings.TrimSuffix(cfg.ReportPath, filepath.Ext(cfg.ReportPath))
}

// ExecuteMetrics displays the scoring factors and the sizing table in use.
// This is a static display that does not require a report.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.ReportLoader) error {
	return writer.WriteMetrics(BuildMetricsRenderModel(cfg.Tiers), cfg)
}
