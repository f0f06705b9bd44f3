package cmd

import (
	"github.com/huangsam/awrlens/core"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/spf13/cobra"
)

// sgaCmd prints the SGA sizing advice of a dump.
var sgaCmd = &cobra.Command{
	Use:   "sga <report>",
	Short: "Recommend an SGA size per instance from the SGA target advisory.",
	Long: `Read the SGA target advisory of a dump and pick, per instance, the smallest
SGA that keeps the estimated physical reads on their plateau.

Examples:
  awrlens sga prod.out
  awrlens sga prod.out --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSGA(rootCtx, cfg, loader); err != nil {
			contract.LogFatal("Cannot compute SGA advice", err)
		}
	},
}
