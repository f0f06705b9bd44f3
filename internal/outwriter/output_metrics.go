package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
	"github.com/olekukonko/tablewriter"
)

// tierOrder lists the difficulty tiers for display.
var tierOrder = []schema.DifficultyTier{
	schema.TierMinimal, schema.TierLow, schema.TierModerate, schema.TierHigh, schema.TierVeryHigh,
}

// PrintMetricsDefinitions displays the scoring factors, targets and sizing tiers.
// This is a static display that does not require a report.
func PrintMetricsDefinitions(renderModel *schema.MetricsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteMetricsDefinitions(w, renderModel, cfg)
	}, successMessage(cfg.Output))
}

// WriteMetricsDefinitions writes the metrics definitions in the configured format.
func WriteMetricsDefinitions(w io.Writer, renderModel *schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(w, cfg.Output, renderModel)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"factor", "purpose", "rule"}, func(cw *csv.Writer) error {
			for _, f := range renderModel.Factors {
				if err := cw.Write([]string{string(f.Key), f.Purpose, f.Rule}); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	default:
		return writeMetricsText(w, renderModel, cfg)
	}
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, renderModel *schema.MetricsRenderModel, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	title := heading("🧮", renderModel.Title, cfg)
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n\n", title, underline(title), renderModel.Description); err != nil {
		return err
	}

	for _, f := range renderModel.Factors {
		if _, err := fmt.Fprintf(w, "%s: %s\n   Rule: %s\n", f.Key, f.Purpose, f.Rule); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nTargets\n"); err != nil {
		return err
	}
	targets := tablewriter.NewWriter(w)
	targets.Header([]string{"Target", "Base", "Feature Scale"})
	var rows [][]string
	for _, t := range renderModel.Targets {
		rows = append(rows, []string{string(t.Target), fmtFloat(t.BaseScore), fmtFloat(t.FeatureScale)})
	}
	if err := targets.Bulk(rows); err != nil {
		return err
	}
	if err := targets.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nDifficulty tiers\n"); err != nil {
		return err
	}
	for _, tier := range tierOrder {
		if band, ok := renderModel.TierBands[string(tier)]; ok {
			if _, err := fmt.Fprintf(w, "   %-10s %s\n", tier, band); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nInstance tiers\n"); err != nil {
		return err
	}
	tiers := tablewriter.NewWriter(w)
	tiers.Header([]string{"Class", "vCPU", "Memory GB", "Hourly USD"})
	rows = nil
	for _, t := range renderModel.Tiers {
		rate := "-"
		if t.HourlyUSD != nil {
			rate = strconv.FormatFloat(*t.HourlyUSD, 'f', -1, 64)
		}
		rows = append(rows, []string{t.Class, fmt.Sprintf(intFmt, t.VCPU), fmt.Sprintf(intFmt, t.MemoryGB), rate})
	}
	if err := tiers.Bulk(rows); err != nil {
		return err
	}
	return tiers.Render()
}

// underline returns a rule as wide as s in runes.
func underline(s string) string {
	n := len([]rune(s))
	out := make([]rune, n)
	for i := range out {
		out[i] = '='
	}
	return string(out)
}
