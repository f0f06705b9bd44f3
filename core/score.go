package core

import (
	"github.com/huangsam/awrlens/core/algo"
	"github.com/huangsam/awrlens/schema"
)

// Score bounds.
const (
	minScore = 0.0
	maxScore = 10.0
)

// Resource pressure thresholds in percent.
const (
	cpuPressurePct    = 80.0
	ioWaitPressurePct = 40.0
	pressureWeight    = 1.0
)

const (
	racWeight          = 2.0
	versionStepWeight  = 0.5
	manyObjectsCount   = 1000
	manyObjectsWeight  = 0.5
	sameEngineFeatures = 0.3
	mysqlScale         = 1.5
)

// baseScores is the engine-change effort per target.
var baseScores = map[schema.TargetDatabase]float64{
	schema.RDSOracle:        1.0,
	schema.RDSPostgreSQL:    3.0,
	schema.AuroraPostgreSQL: 3.2,
	schema.RDSMySQL:         4.0,
	schema.AuroraMySQL:      4.2,
}

// codeVolumeSteps are PL/SQL line thresholds, largest first.
var codeVolumeSteps = []struct {
	lines  int64
	weight float64
}{
	{1_000_000, 3.0},
	{250_000, 2.0},
	{50_000, 1.0},
	{10_000, 0.5},
}

// editionWeight is the effort of leaving the detected edition for a target.
func editionWeight(edition schema.Edition, target schema.TargetDatabase) float64 {
	same := target.SameEngine()
	switch edition {
	case schema.EnterpriseEdition:
		if same {
			return 1.0
		}
		return 1.5
	case schema.StandardEdition2:
		if same {
			return 0
		}
		return 0.5
	case schema.StandardEditionOne, schema.StandardEdition:
		return 0.5
	case schema.ExpressEdition, schema.PersonalEdition:
		if same {
			return 0.5
		}
		return 0
	case schema.UnknownEdition:
		return 0
	default:
		return 0
	}
}

// charsetWeight is the conversion effort of a charset class.
func charsetWeight(class CharsetClass) float64 {
	switch class {
	case CharsetNone, CharsetCanonical:
		return 0
	case CharsetSingleByte:
		return 1.0
	case CharsetMultiByte:
		return 2.0
	case CharsetLegacy:
		return 2.5
	case CharsetUnrecognized:
		return 1.5
	default:
		return 1.5
	}
}

// codeVolumeWeight steps on PL/SQL lines and objects, scaled by how much of the
// code the target can run as-is.
func codeVolumeWeight(meta schema.ReportMetadata, target schema.TargetDatabase) float64 {
	var w float64
	for _, s := range codeVolumeSteps {
		if meta.PLSQLLines >= s.lines {
			w = s.weight
			break
		}
	}
	if meta.PLSQLObjects >= manyObjectsCount {
		w += manyObjectsWeight
	}
	switch {
	case target.SameEngine():
		return 0
	case target.IsMySQL():
		return w * mysqlScale
	default:
		return w
	}
}

// featureScale weighs the feature total by target procedural support.
func featureScale(target schema.TargetDatabase) float64 {
	switch {
	case target.SameEngine():
		return sameEngineFeatures
	case target.IsMySQL():
		return mysqlScale
	default:
		return 1.0
	}
}

// resourcePressureWeight adds weight for saturated CPU or I/O.
func resourcePressureWeight(usage schema.ResourceUsage) float64 {
	var w float64
	if usage.MeanCPUUtilPct > cpuPressurePct {
		w += pressureWeight
	}
	if usage.IOWaitPct > ioWaitPressurePct {
		w += pressureWeight
	}
	return w
}

// scoreFactors computes every factor for one target.
func scoreFactors(facts Facts, usage schema.ResourceUsage, meta schema.ReportMetadata,
	features schema.FeatureAssessment, target schema.TargetDatabase,
) map[schema.FactorKey]float64 {
	factors := make(map[schema.FactorKey]float64, len(schema.AllFactorKeys))
	factors[schema.FactorBase] = baseScores[target]
	factors[schema.FactorEdition] = editionWeight(facts.Edition, target)
	factors[schema.FactorRAC] = 0
	if facts.RAC {
		factors[schema.FactorRAC] = racWeight
	}
	factors[schema.FactorVersion] = 0
	if target.SameEngine() {
		factors[schema.FactorVersion] = versionStepWeight * float64(VersionGap(facts.MajorVersion))
	}
	factors[schema.FactorCharset] = charsetWeight(facts.CharsetClass)
	factors[schema.FactorCodeVolume] = codeVolumeWeight(meta, target)
	factors[schema.FactorFeatures] = features.TotalWeight * featureScale(target)
	factors[schema.FactorResourcePressure] = resourcePressureWeight(usage)
	return factors
}

// computeScore sums the factors and clamps the result to [0, 10].
func computeScore(factors map[schema.FactorKey]float64) float64 {
	var raw float64
	for _, k := range schema.AllFactorKeys {
		raw += factors[k]
	}
	return algo.Clamp(raw, minScore, maxScore)
}
