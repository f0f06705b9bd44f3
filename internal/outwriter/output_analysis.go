package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAnalysis writes an analysis to the configured output file or stdout.
func PrintAnalysis(result *schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteAnalysis(w, result, cfg)
	}, successMessage(cfg.Output))
}

// WriteAnalysis outputs an analysis, dispatching based on the output format configured.
func WriteAnalysis(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(w, cfg.Output, result)
	case schema.CSVOut:
		return writeAnalysisCSV(w, result, cfg)
	default:
		return writeAnalysisText(w, result, cfg)
	}
}

// analysisCSVHeader lists the fixed columns around the factor columns.
func analysisCSVHeader() []string {
	header := []string{"rank", "target", "score", "tier"}
	for _, k := range schema.AllFactorKeys {
		header = append(header, string(k))
	}
	return append(header, "instance_class", "vcpu", "memory_gb", "monthly_cost")
}

// writeAnalysisCSV writes one row per target, easiest first.
func writeAnalysisCSV(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return writeCSVWithHeader(w, analysisCSVHeader(), func(cw *csv.Writer) error {
		for _, r := range schema.RankTargets(result.Targets) {
			rec := []string{
				strconv.Itoa(r.Rank),
				string(r.Target),
				fmtFloat(r.Score),
				string(r.Tier),
			}
			for _, k := range schema.AllFactorKeys {
				rec = append(rec, fmtFloat(r.Factors[k]))
			}
			if inst := r.Instance; inst != nil {
				cost := ""
				if inst.EstimatedMonthlyCost != nil {
					cost = fmtFloat(*inst.EstimatedMonthlyCost)
				}
				rec = append(rec, inst.InstanceClass, fmt.Sprintf(intFmt, inst.VCPU), fmt.Sprintf(intFmt, inst.MemoryGB), cost)
			} else {
				rec = append(rec, "", "", "", "")
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeAnalysisText writes the ranking table followed by per-target details.
func writeAnalysisText(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	title := fmt.Sprintf("Migration complexity for %s (%s, edition %s)", result.Source, result.Dialect, result.Edition)
	if _, err := fmt.Fprintf(w, "%s\n\n", heading("🧭", title, cfg)); err != nil {
		return err
	}

	ranked := schema.RankTargets(result.Targets)
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Target", "Score", "Tier", "Instance", "vCPU", "Memory GB", "Monthly USD"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, r := range ranked {
		row := []string{
			strconv.Itoa(r.Rank),
			string(r.Target),
			fmtFloat(r.Score),
			tierLabel(r.Score, cfg),
		}
		if inst := r.Instance; inst != nil {
			cost := "-"
			if inst.EstimatedMonthlyCost != nil {
				cost = fmtFloat(*inst.EstimatedMonthlyCost)
			}
			row = append(row, inst.InstanceClass, fmt.Sprintf(intFmt, inst.VCPU), fmt.Sprintf(intFmt, inst.MemoryGB), cost)
		} else {
			row = append(row, "-", "-", "-", "-")
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	u := result.Usage
	if _, err := fmt.Fprintf(w, "CPU util mean %s%% / p99 %s%%, memory mean %s GB, I/O wait %s%% of DB time, IOPS p99 %s\n",
		fmtFloat(u.MeanCPUUtilPct), fmtFloat(u.P99CPUUtilPct), fmtFloat(u.MeanMemoryGB),
		fmtFloat(u.IOWaitPct), fmtFloat(u.P99TotalIOPS)); err != nil {
		return err
	}

	width := GetMaxTableTextWidth(cfg, 0)
	for _, r := range ranked {
		if err := writeTargetDetails(w, r, fmtFloat, width); err != nil {
			return err
		}
	}

	if n := len(result.Diagnostics); n > 0 {
		if _, err := fmt.Fprintf(w, "\nSkipped %d malformed row(s) while parsing\n", n); err != nil {
			return err
		}
	}
	return nil
}

// writeTargetDetails writes the factor breakdown and text lists of one target.
func writeTargetDetails(w io.Writer, r schema.RankedComplexity, fmtFloat func(float64) string, width int) error {
	var parts []string
	for _, k := range schema.AllFactorKeys {
		if v := r.Factors[k]; v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%s", k, fmtFloat(v)))
		}
	}
	if _, err := fmt.Fprintf(w, "\n%s: %s\n", r.Target, strings.Join(parts, ", ")); err != nil {
		return err
	}
	sections := []struct {
		title string
		items []string
	}{
		{"Recommendations", r.Recommendations},
		{"Warnings", r.Warnings},
		{"Next steps", r.NextSteps},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s:\n", s.title); err != nil {
			return err
		}
		for _, item := range s.items {
			if _, err := fmt.Fprintf(w, "    - %s\n", truncateText(item, width)); err != nil {
				return err
			}
		}
	}
	return nil
}
