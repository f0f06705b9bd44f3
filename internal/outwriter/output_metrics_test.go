package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetrics() *schema.MetricsRenderModel {
	rate := 0.25
	return &schema.MetricsRenderModel{
		Title:       "Migration Complexity Scoring",
		Description: "Scores are the clamped sum of the factors below.",
		Targets: []schema.TargetDefinition{
			{Target: schema.RDSOracle, BaseScore: 0, FeatureScale: 0.3},
			{Target: schema.RDSMySQL, BaseScore: 4.5, FeatureScale: 1.5},
		},
		Factors: []schema.FactorDefinition{
			{Key: schema.FactorRAC, Purpose: "Cluster removal", Rule: "2 when the source runs more than one instance"},
		},
		Tiers: []schema.InstanceTier{
			{Class: "db.r6i.large", VCPU: 2, MemoryGB: 16, HourlyUSD: &rate},
			{Class: "custom", VCPU: 4, MemoryGB: 32},
		},
		TierBands: map[string]string{"Minimal": "0 to 2", "Very High": "above 8"},
	}
}

func TestWriteMetricsText(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.TextOut, Precision: 1}
	require.NoError(t, WriteMetricsDefinitions(&buf, sampleMetrics(), cfg))

	output := buf.String()
	assert.Contains(t, output, "Migration Complexity Scoring\n============================")
	assert.Contains(t, output, "rac: Cluster removal")
	assert.Contains(t, output, "Rule: 2 when the source runs more than one instance")
	assert.Contains(t, output, "rds-mysql")
	assert.Contains(t, output, "4.5")
	assert.Contains(t, output, "Minimal    0 to 2")
	assert.Contains(t, output, "db.r6i.large")
	assert.Contains(t, output, "0.25")
}

func TestWriteMetricsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMetricsDefinitions(&buf, sampleMetrics(), &contract.Config{Output: schema.JSONOut}))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "Migration Complexity Scoring", result["title"])
	assert.Contains(t, result, "factors")
	assert.Contains(t, result, "tier_bands")
}

func TestWriteMetricsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMetricsDefinitions(&buf, sampleMetrics(), &contract.Config{Output: schema.CSVOut}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"factor", "purpose", "rule"}, records[0])
	assert.Equal(t, "rac", records[1][0])
}

func TestUnderline(t *testing.T) {
	assert.Equal(t, "===", underline("abc"))
	assert.Equal(t, "==", underline("🧮 "))
	assert.Equal(t, "", underline(""))
}
