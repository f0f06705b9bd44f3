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

// reportOutput is the structured form of a parse.
type reportOutput struct {
	Model       *schema.ReportModel `json:"model" yaml:"model"`
	Diagnostics schema.Diagnostics  `json:"diagnostics" yaml:"diagnostics"`
}

// PrintReport writes a parsed report to the configured output file or stdout.
func PrintReport(model *schema.ReportModel, diags schema.Diagnostics, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteReport(w, model, diags, cfg)
	}, successMessage(cfg.Output))
}

// WriteReport outputs a parsed report, dispatching based on the output format configured.
func WriteReport(w io.Writer, model *schema.ReportModel, diags schema.Diagnostics, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.YAMLOut:
		return writeStructured(w, cfg.Output, reportOutput{Model: model, Diagnostics: diags})
	case schema.CSVOut:
		return writeReportCSV(w, model, diags)
	default:
		return writeReportText(w, model, diags, cfg)
	}
}

// writeReportCSV writes one row per section with its entry and diagnostic counts.
func writeReportCSV(w io.Writer, model *schema.ReportModel, diags schema.Diagnostics) error {
	perSection := diags.BySection()
	return writeCSVWithHeader(w, []string{"section", "rows", "diagnostics"}, func(cw *csv.Writer) error {
		for _, c := range model.SectionCounts() {
			rec := []string{string(c.Section), strconv.Itoa(c.Rows), strconv.Itoa(perSection[c.Section])}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeReportText writes the metadata and section tables.
func writeReportText(w io.Writer, model *schema.ReportModel, diags schema.Diagnostics, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	meta := model.Metadata

	if _, err := fmt.Fprintf(w, "%s\n\n", heading("📄", "Report "+model.Source, cfg)); err != nil {
		return err
	}

	textWidth := GetMaxTableTextWidth(cfg, 20)
	metaTable := tablewriter.NewWriter(w)
	metaTable.Header([]string{"Field", "Value"})
	rows := [][]string{
		{"Dialect", string(model.Dialect())},
		{"Database", meta.DBName},
		{"Version", meta.Version},
		{"Banner", truncateText(meta.Banner, textWidth)},
		{"Platform", meta.Platform},
		{"Instances", fmt.Sprintf(intFmt, meta.Instances)},
		{"Character set", meta.CharacterSet},
		{"CPUs", fmt.Sprintf(intFmt, meta.NumCPUs)},
		{"Physical memory GB", fmtFloat(meta.PhysicalMemoryGB)},
		{"Total size GB", fmtFloat(meta.TotalSizeGB)},
		{"PL/SQL lines", fmt.Sprintf(intFmt, meta.PLSQLLines)},
		{"Features in use", fmt.Sprintf(intFmt, len(model.CurrentFeatures()))},
	}
	if err := metaTable.Bulk(rows); err != nil {
		return err
	}
	if err := metaTable.Render(); err != nil {
		return err
	}

	perSection := diags.BySection()
	sectionTable := tablewriter.NewWriter(w)
	sectionTable.Header([]string{"Section", "Rows", "Skipped"})
	sectionTable.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, c := range model.SectionCounts() {
		data = append(data, []string{string(c.Section), strconv.Itoa(c.Rows), strconv.Itoa(perSection[c.Section])})
	}
	if err := sectionTable.Bulk(data); err != nil {
		return err
	}
	if err := sectionTable.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Skipped %d row(s)\n", len(diags)); err != nil {
		return err
	}
	if cfg.Verbose {
		for _, d := range diags {
			if _, err := fmt.Fprintf(w, "  - %s\n", d.Error()); err != nil {
				return err
			}
		}
	}
	return nil
}
