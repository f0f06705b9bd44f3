package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSGA(t *testing.T) {
	recs := []schema.SGARecommendation{{
		InstanceID:       1,
		CurrentSGAMB:     4096,
		RecommendedSGAMB: 3072,
		SizeFactor:       0.75,
		EstPhysicalReads: 1200,
		Action:           schema.SGAShrink,
	}}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSGA(&buf, "prod.out", recs, &contract.Config{Output: schema.TextOut, Precision: 1}))
		output := buf.String()
		assert.Contains(t, output, "SGA advice for prod.out")
		assert.Contains(t, output, "3072.0")
		assert.Contains(t, output, "0.75")
		assert.Contains(t, output, "shrink")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSGA(&buf, "prod.out", recs, &contract.Config{Output: schema.CSVOut, Precision: 1}))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "instance_id,current_sga_mb,recommended_sga_mb,size_factor,est_physical_reads,action", lines[0])
		assert.Equal(t, "1,4096.0,3072.0,0.75,1200,shrink", lines[1])
	})

	t.Run("empty text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSGA(&buf, "prod.out", nil, &contract.Config{Output: schema.TextOut, Precision: 1}))
		assert.Contains(t, buf.String(), "No SGA-ADVICE rows found")
	})

	t.Run("empty json is a list", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSGA(&buf, "prod.out", nil, &contract.Config{Output: schema.JSONOut}))
		var decoded []schema.SGARecommendation
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.NotNil(t, decoded)
		assert.Empty(t, decoded)
	})
}
