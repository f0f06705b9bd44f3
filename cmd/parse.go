package cmd

import (
	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/spf13/cobra"
)

// parseCmd prints the structured model of a dump.
var parseCmd = &cobra.Command{
	Use:   "parse <report>",
	Short: "Parse a dump and show its sections and skipped rows.",
	Long: `Parse an Oracle AWR or Statspack dump into its structured model.

The text output lists the database metadata, how many rows each section
produced, and every row that had to be skipped. JSON and YAML output carry
the full model, including all samples.

Examples:
  # Check what awrlens can read from a dump
  awrlens parse prod.out

  # Dump the full model for another tool
  awrlens parse prod.out --output json --output-file prod.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteParse(rootCtx, cfg, loader); err != nil {
			contract.LogFatal("Cannot parse report", err)
		}
	},
}
