package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
)

// PrintCheckResult writes a gate result to the configured output file or stdout.
func PrintCheckResult(result *schema.CheckResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCheckResult(w, result, cfg)
	}, successMessage(cfg.Output))
}

// WriteCheckResult writes a gate result in a concise format suitable for CI/CD.
func WriteCheckResult(w io.Writer, result *schema.CheckResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(w, cfg.Output, result)
	case schema.CSVOut:
		header := []string{"target", "score", "max_score", "tier", "passed"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, t := range result.Targets {
				rec := []string{string(t.Target), fmtFloat(t.Score), fmtFloat(t.MaxScore), string(t.Tier), strconv.FormatBool(t.Passed)}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	}

	if _, err := fmt.Fprintf(w, "Complexity Check Results: %s\n\n", result.Source); err != nil {
		return err
	}
	if result.Passed {
		if _, err := fmt.Fprintf(w, "%s\n\n", heading("✅", "All targets within their maximum score", cfg)); err != nil {
			return err
		}
	} else {
		msg := fmt.Sprintf("Complexity check failed: %d target(s) above their maximum score", len(result.Failed()))
		if _, err := fmt.Fprintf(w, "%s\n\n", heading("❌", msg, cfg)); err != nil {
			return err
		}
	}
	for _, t := range result.Targets {
		mark := "ok"
		if !t.Passed {
			mark = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "  %-4s %-18s score %s (max %s) %s\n",
			mark, t.Target, fmtFloat(t.Score), fmtFloat(t.MaxScore), tierLabel(t.Score, cfg)); err != nil {
			return err
		}
	}
	return nil
}
