package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSGA writes SGA recommendations to the configured output file or stdout.
func PrintSGA(source string, recs []schema.SGARecommendation, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSGA(w, source, recs, cfg)
	}, successMessage(cfg.Output))
}

// WriteSGA outputs SGA recommendations, dispatching based on the output format configured.
func WriteSGA(w io.Writer, source string, recs []schema.SGARecommendation, cfg *contract.Config) error {
	if recs == nil {
		recs = []schema.SGARecommendation{}
	}
	fmtFloat, _ := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(w, cfg.Output, recs)
	case schema.CSVOut:
		header := []string{"instance_id", "current_sga_mb", "recommended_sga_mb", "size_factor", "est_physical_reads", "action"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, r := range recs {
				if err := cw.Write(sgaRow(r, fmtFloat)); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	default:
		if _, err := fmt.Fprintf(w, "%s\n\n", heading("🧠", "SGA advice for "+source, cfg)); err != nil {
			return err
		}
		if len(recs) == 0 {
			_, err := fmt.Fprintln(w, "No SGA-ADVICE rows found")
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Instance", "Current MB", "Recommended MB", "Factor", "Est Reads", "Action"})
		table.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, r := range recs {
			data = append(data, sgaRow(r, fmtFloat))
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		return table.Render()
	}
}

func sgaRow(r schema.SGARecommendation, fmtFloat func(float64) string) []string {
	return []string{
		strconv.Itoa(r.InstanceID),
		fmtFloat(r.CurrentSGAMB),
		fmtFloat(r.RecommendedSGAMB),
		strconv.FormatFloat(r.SizeFactor, 'f', -1, 64),
		strconv.FormatFloat(r.EstPhysicalReads, 'f', -1, 64),
		string(r.Action),
	}
}
