package core

import (
	"fmt"

	"github.com/huangsam/awrlens/schema"
)

// factorDefinitions explains each factor in display order.
var factorDefinitions = []schema.FactorDefinition{
	{Key: schema.FactorBase, Purpose: "Engine change effort", Rule: "fixed per target"},
	{Key: schema.FactorEdition, Purpose: "Edition change", Rule: "EE 1.0 same engine or 1.5 otherwise; SE2 0.5 when leaving the engine; SE1/SE 0.5; XE/PE 0.5 same engine"},
	{Key: schema.FactorRAC, Purpose: "Cluster removal", Rule: fmt.Sprintf("%.1f when the source runs more than one instance", racWeight)},
	{Key: schema.FactorVersion, Purpose: "Version upgrade", Rule: fmt.Sprintf("%.1f per major release below %d, same engine only", versionStepWeight, latestSupportedRelease)},
	{Key: schema.FactorCharset, Purpose: "Character set conversion", Rule: "0 for AL32UTF8, 1.0 single-byte, 2.0 multi-byte, 2.5 legacy, 1.5 unrecognized"},
	{Key: schema.FactorCodeVolume, Purpose: "PL/SQL volume", Rule: fmt.Sprintf("0.5 to 3.0 by line count plus %.1f for %d+ objects; 0 on the same engine, x%.1f for MySQL", manyObjectsWeight, manyObjectsCount, mysqlScale)},
	{Key: schema.FactorFeatures, Purpose: "Feature incompatibility", Rule: "sum of incompatible feature weights (capped at 10) x target feature scale"},
	{Key: schema.FactorResourcePressure, Purpose: "CPU or I/O saturation", Rule: fmt.Sprintf("+%.1f when mean CPU > %.0f%%, +%.1f when I/O wait > %.0f%% of DB time", pressureWeight, cpuPressurePct, pressureWeight, ioWaitPressurePct)},
}

// BuildMetricsRenderModel constructs the complete render model of the scoring rules
// and the sizing table in use.
func BuildMetricsRenderModel(tiers []schema.InstanceTier) *schema.MetricsRenderModel {
	if len(tiers) == 0 {
		tiers = DefaultInstanceTiers()
	}
	targets := make([]schema.TargetDefinition, len(schema.AllTargets))
	for i, t := range schema.AllTargets {
		targets[i] = schema.TargetDefinition{Target: t, BaseScore: baseScores[t], FeatureScale: featureScale(t)}
	}
	factors := make([]schema.FactorDefinition, len(factorDefinitions))
	copy(factors, factorDefinitions)

	return &schema.MetricsRenderModel{
		Title: "Migration Complexity Scoring",
		Description: fmt.Sprintf("Each target score is the sum of the factors below, clamped to [%.0f, %.0f]. "+
			"Above %.0f only rds-oracle gets an instance recommendation.", minScore, maxScore, riskyScore),
		Targets: targets,
		Factors: factors,
		Tiers:   tiers,
		TierBands: map[string]string{
			string(schema.TierMinimal):  "0 to 2",
			string(schema.TierLow):      "above 2 to 4",
			string(schema.TierModerate): "above 4 to 6",
			string(schema.TierHigh):     "above 6 to 8",
			string(schema.TierVeryHigh): "above 8",
		},
	}
}
