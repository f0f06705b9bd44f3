package cmd

import (
	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes the dump samples to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export <report>",
	Short: "Export performance, memory and wait event samples to Parquet.",
	Long: `Write the snapshot samples of a dump to three Parquet files for use in
notebooks or query engines.

The --output-file flag sets the path prefix; it defaults to the report path
without its extension.

Examples:
  # Writes prod.performance.parquet and friends next to the dump
  awrlens export prod.out

  # Choose the prefix
  awrlens export prod.out --output-file /tmp/prod`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, loader); err != nil {
			contract.LogFatal("Cannot export report", err)
		}
	},
}
