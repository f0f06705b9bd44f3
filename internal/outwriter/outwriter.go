// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a parsed report using the configured output format.
func (ow *OutWriter) WriteReport(model *schema.ReportModel, diags schema.Diagnostics, cfg *contract.Config) error {
	return PrintReport(model, diags, cfg)
}

// WriteAnalysis prints migration complexity results using the configured output format.
func (ow *OutWriter) WriteAnalysis(result *schema.AnalysisResult, cfg *contract.Config) error {
	return PrintAnalysis(result, cfg)
}

// WriteSGA prints SGA sizing advice using the configured output format.
func (ow *OutWriter) WriteSGA(source string, recs []schema.SGARecommendation, cfg *contract.Config) error {
	return PrintSGA(source, recs, cfg)
}

// WriteCheck prints a complexity gate result using the configured output format.
func (ow *OutWriter) WriteCheck(result *schema.CheckResult, cfg *contract.Config) error {
	return PrintCheckResult(result, cfg)
}

// WriteMetrics prints metrics definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(renderModel *schema.MetricsRenderModel, cfg *contract.Config) error {
	return PrintMetricsDefinitions(renderModel, cfg)
}
