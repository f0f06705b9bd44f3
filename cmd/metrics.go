package cmd

import (
	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the scoring rules and the sizing table.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the complexity factors and the instance sizing table",
	Long: `Show how a migration complexity score is built and which instance tiers
are used for sizing.

Provides complete transparency into the scoring, including:
- Base score and feature scale per target
- Each factor with the rule that sets its weight
- Difficulty tier bands
- The instance tiers in use, including custom tiers from .awrlens.yaml

No dump is read - this is purely informational.

Examples:
  # Show the built-in rules
  awrlens metrics

  # View with custom tiers from a config file
  awrlens metrics --config .awrlens.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, loader); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
