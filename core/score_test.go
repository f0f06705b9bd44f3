package core

import (
	"testing"

	"github.com/huangsam/awrlens/schema"
	"github.com/stretchr/testify/assert"
)

func TestEditionWeight(t *testing.T) {
	tests := []struct {
		edition schema.Edition
		same    float64
		other   float64
	}{
		{schema.EnterpriseEdition, 1.0, 1.5},
		{schema.StandardEdition2, 0, 0.5},
		{schema.StandardEditionOne, 0.5, 0.5},
		{schema.StandardEdition, 0.5, 0.5},
		{schema.ExpressEdition, 0.5, 0},
		{schema.PersonalEdition, 0.5, 0},
		{schema.UnknownEdition, 0, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.edition), func(t *testing.T) {
			assert.Equal(t, tt.same, editionWeight(tt.edition, schema.RDSOracle))
			assert.Equal(t, tt.other, editionWeight(tt.edition, schema.RDSPostgreSQL))
			assert.Equal(t, tt.other, editionWeight(tt.edition, schema.AuroraMySQL))
		})
	}
}

func TestCharsetWeight(t *testing.T) {
	assert.Equal(t, 0.0, charsetWeight(CharsetNone))
	assert.Equal(t, 0.0, charsetWeight(CharsetCanonical))
	assert.Equal(t, 1.0, charsetWeight(CharsetSingleByte))
	assert.Equal(t, 2.0, charsetWeight(CharsetMultiByte))
	assert.Equal(t, 2.5, charsetWeight(CharsetLegacy))
	assert.Equal(t, 1.5, charsetWeight(CharsetUnrecognized))
}

func TestCodeVolumeWeight(t *testing.T) {
	tests := []struct {
		name    string
		lines   int64
		objects int64
		want    float64 // for a PostgreSQL target
	}{
		{"tiny", 500, 10, 0},
		{"small", 10_000, 0, 0.5},
		{"medium", 50_000, 0, 1.0},
		{"large", 250_000, 0, 2.0},
		{"huge", 2_000_000, 0, 3.0},
		{"many objects only", 0, 1000, 0.5},
		{"large with objects", 300_000, 1500, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := schema.ReportMetadata{PLSQLLines: tt.lines, PLSQLObjects: tt.objects}
			assert.Equal(t, tt.want, codeVolumeWeight(meta, schema.RDSPostgreSQL))
			assert.Equal(t, tt.want, codeVolumeWeight(meta, schema.AuroraPostgreSQL))
			assert.InDelta(t, tt.want*1.5, codeVolumeWeight(meta, schema.RDSMySQL), 1e-9)
			assert.Equal(t, 0.0, codeVolumeWeight(meta, schema.RDSOracle))
		})
	}
}

func TestFeatureScale(t *testing.T) {
	assert.Equal(t, 0.3, featureScale(schema.RDSOracle))
	assert.Equal(t, 1.0, featureScale(schema.RDSPostgreSQL))
	assert.Equal(t, 1.0, featureScale(schema.AuroraPostgreSQL))
	assert.Equal(t, 1.5, featureScale(schema.RDSMySQL))
	assert.Equal(t, 1.5, featureScale(schema.AuroraMySQL))
}

func TestResourcePressureWeight(t *testing.T) {
	assert.Equal(t, 0.0, resourcePressureWeight(schema.ResourceUsage{MeanCPUUtilPct: 80, IOWaitPct: 40}))
	assert.Equal(t, 1.0, resourcePressureWeight(schema.ResourceUsage{MeanCPUUtilPct: 80.1}))
	assert.Equal(t, 1.0, resourcePressureWeight(schema.ResourceUsage{IOWaitPct: 41}))
	assert.Equal(t, 2.0, resourcePressureWeight(schema.ResourceUsage{MeanCPUUtilPct: 95, IOWaitPct: 60}))
}

func TestScoreFactorsVersionSameEngineOnly(t *testing.T) {
	facts := Facts{Edition: schema.EnterpriseEdition, MajorVersion: 11}
	oracle := scoreFactors(facts, schema.ResourceUsage{}, schema.ReportMetadata{}, schema.FeatureAssessment{}, schema.RDSOracle)
	pg := scoreFactors(facts, schema.ResourceUsage{}, schema.ReportMetadata{}, schema.FeatureAssessment{}, schema.RDSPostgreSQL)

	assert.Equal(t, 1.5, oracle[schema.FactorVersion])
	assert.Equal(t, 0.0, pg[schema.FactorVersion])
	assert.Len(t, oracle, len(schema.AllFactorKeys))
	for _, k := range schema.AllFactorKeys {
		assert.Contains(t, pg, k)
	}
}

func TestComputeScoreClamps(t *testing.T) {
	assert.Equal(t, 10.0, computeScore(map[schema.FactorKey]float64{
		schema.FactorBase: 4, schema.FactorFeatures: 15,
	}))
	assert.Equal(t, 0.0, computeScore(map[schema.FactorKey]float64{}))
	assert.InDelta(t, 3.5, computeScore(map[schema.FactorKey]float64{
		schema.FactorBase: 3, schema.FactorEdition: 0.5,
	}), 1e-9)
}
