package cmd

import (
	"errors"
	"os"

	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <report>",
	Short: "Fail when a migration target scores above its maximum",
	Long: `Score the configured targets and compare each against a maximum score.

Exits with a non-zero code when any target is above its maximum, so a
migration plan can be gated in a pipeline.

Default maximum: 8.0 for every target

Examples:
  # Require an easy path to RDS for Oracle
  awrlens check prod.out --targets rds-oracle --thresholds-override "rds-oracle:4"

  # Gate on several targets at once
  awrlens check prod.out --thresholds-override "rds-postgresql:6,aurora-postgresql:6"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteCheck(rootCtx, cfg, loader)
		if errors.Is(err, core.ErrCheckFailed) {
			_ = stopProfiling()
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Complexity check failed", err)
		}
	},
}
