package cmd

import (
	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd scores a dump against the migration targets.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <report>",
	Short: "Rank AWS migration targets by complexity and size an instance.",
	Long: `Score how hard it is to move the database in a dump to each AWS target.

Each target gets a 0-10 score built from edition, RAC, version, character set,
PL/SQL volume, feature usage and resource pressure. Targets that are not too
risky also get an instance class sized from the observed CPU and memory.

Examples:
  # Rank every target
  awrlens analyze prod.out

  # Compare PostgreSQL flavors only
  awrlens analyze prod.out --targets rds-postgresql,aurora-postgresql

  # Keep the full result for a report
  awrlens analyze prod.out --output yaml --output-file prod-analysis.yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, loader); err != nil {
			contract.LogFatal("Cannot analyze report", err)
		}
	},
}
