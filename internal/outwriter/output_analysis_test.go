package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleAnalysis() *schema.AnalysisResult {
	cost := 730.0
	return &schema.AnalysisResult{
		Source:  "prod.out",
		Dialect: schema.StatspackDialect,
		Edition: schema.StandardEdition2,
		Usage:   schema.ResourceUsage{MeanCPUUtilPct: 42, IOWaitPct: 12.5},
		Targets: map[schema.TargetDatabase]schema.MigrationComplexity{
			schema.RDSPostgreSQL: {
				Target:          schema.RDSPostgreSQL,
				Score:           5.8,
				Tier:            schema.TierModerate,
				Factors:         map[schema.FactorKey]float64{schema.FactorBase: 4, schema.FactorFeatures: 1.8},
				Recommendations: []string{"Partitioning: declarative partitioning"},
				Warnings:        []string{},
				NextSteps:       []string{"Run an SCT assessment"},
			},
			schema.RDSOracle: {
				Target:    schema.RDSOracle,
				Score:     1.5,
				Tier:      schema.TierMinimal,
				Factors:   map[schema.FactorKey]float64{schema.FactorVersion: 1.5},
				NextSteps: []string{"Provision db.r6i.2xlarge and run a representative load test"},
				Instance: &schema.InstanceRecommendation{
					InstanceClass:        "db.r6i.2xlarge",
					VCPU:                 8,
					MemoryGB:             64,
					EstimatedMonthlyCost: &cost,
				},
			},
		},
		Diagnostics: schema.Diagnostics{{Section: schema.SectionMemory, Line: 7, Kind: schema.ConversionDiag}},
	}
}

func TestWriteAnalysisText(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut, Precision: 1, Width: 120}
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), cfg))

	output := buf.String()
	assert.Contains(t, output, "Migration complexity for prod.out (statspack, edition SE2)")
	assert.Contains(t, output, "db.r6i.2xlarge")
	assert.Contains(t, output, "Moderate")
	assert.Contains(t, output, "Recommendations:")
	assert.Contains(t, output, "- Partitioning: declarative partitioning")
	assert.NotContains(t, output, "Warnings:")
	assert.Contains(t, output, "Skipped 1 malformed row(s) while parsing")

	// easiest target is listed first in the details
	assert.Less(t, strings.Index(output, "\nrds-oracle: "), strings.Index(output, "\nrds-postgresql: "))
}

func TestWriteAnalysisCSV(t *testing.T) {
	cfg := &contract.Config{Output: schema.CSVOut, Precision: 1}
	var buf bytes.Buffer
	require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), cfg))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, analysisCSVHeader(), header)
	assert.Len(t, header, 4+len(schema.AllFactorKeys)+4)

	assert.Equal(t, []string{"1", "rds-oracle", "1.5", "Minimal"}, records[1][:4])
	assert.Equal(t, "db.r6i.2xlarge", records[1][4+len(schema.AllFactorKeys)])
	assert.Equal(t, "730.0", records[1][len(header)-1])
	assert.Equal(t, "rds-postgresql", records[2][1])
	assert.Equal(t, "", records[2][len(header)-1])
}

func TestWriteAnalysisStructured(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), &contract.Config{Output: schema.JSONOut}))

		var decoded schema.AnalysisResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "prod.out", decoded.Source)
		assert.InDelta(t, 5.8, decoded.Targets[schema.RDSPostgreSQL].Score, 1e-9)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteAnalysis(&buf, sampleAnalysis(), &contract.Config{Output: schema.YAMLOut}))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "statspack", decoded["dialect"])
		assert.Contains(t, decoded, "targets")
	})
}
