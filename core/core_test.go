package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/internal/iocache"
	"github.com/huangsam/awrlens/internal/parquet"
	"github.com/huangsam/awrlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// jsonConfig writes command output as JSON to a file in a temp dir.
func jsonConfig(t *testing.T, report string) *contract.Config {
	t.Helper()
	return &contract.Config{
		ReportPath: report,
		Output:     schema.JSONOut,
		OutputFile: filepath.Join(t.TempDir(), "out.json"),
		Precision:  contract.DefaultPrecision,
	}
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestExecuteAnalyze(t *testing.T) {
	cfg := jsonConfig(t, statspackFixture)
	cfg.Targets = []schema.TargetDatabase{schema.RDSOracle, schema.RDSPostgreSQL}

	require.NoError(t, ExecuteAnalyze(context.Background(), cfg, contract.FileLoader{}))

	var got schema.AnalysisResult
	readJSON(t, cfg.OutputFile, &got)
	assert.Equal(t, schema.StatspackDialect, got.Dialect)
	assert.Len(t, got.Targets, 2)
	assert.InDelta(t, 2.78, got.Targets[schema.RDSOracle].Score, 1e-9)
	assert.InDelta(t, 7.1, got.Targets[schema.RDSPostgreSQL].Score, 1e-9)
}

func TestExecuteParse(t *testing.T) {
	cfg := jsonConfig(t, awrFixture)
	require.NoError(t, ExecuteParse(context.Background(), cfg, contract.FileLoader{}))

	var got struct {
		Model       schema.ReportModel `json:"model"`
		Diagnostics []map[string]any   `json:"diagnostics"`
	}
	readJSON(t, cfg.OutputFile, &got)
	assert.Equal(t, awrFixture, got.Model.Source)
	assert.Equal(t, 2, got.Model.Metadata.Instances)
	require.NotNil(t, got.Model.AWR)
	assert.NotEmpty(t, got.Model.AWR.Workload)
}

func TestExecuteSGA(t *testing.T) {
	cfg := jsonConfig(t, awrFixture)
	require.NoError(t, ExecuteSGA(context.Background(), cfg, contract.FileLoader{}))

	var got []schema.SGARecommendation
	readJSON(t, cfg.OutputFile, &got)
	require.Len(t, got, 2)
	assert.Equal(t, schema.SGAGrow, got[0].Action)
	assert.Equal(t, 49152.0, got[0].RecommendedSGAMB)
}

func TestExecuteCheck(t *testing.T) {
	cfg := jsonConfig(t, statspackFixture)
	err := ExecuteCheck(context.Background(), cfg, contract.FileLoader{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCheckFailed))
	assert.Contains(t, err.Error(), "2 target(s)")

	var got schema.CheckResult
	readJSON(t, cfg.OutputFile, &got)
	assert.False(t, got.Passed, "the result is written before the failure is returned")
	assert.Len(t, got.Failed(), 2)

	cfg = jsonConfig(t, statspackFixture)
	cfg.Targets = []schema.TargetDatabase{schema.RDSOracle}
	cfg.MaxScores = map[schema.TargetDatabase]float64{schema.RDSOracle: 3}
	assert.NoError(t, ExecuteCheck(context.Background(), cfg, contract.FileLoader{}))
}

func TestExecuteExport(t *testing.T) {
	cfg := &contract.Config{
		ReportPath: statspackFixture,
		OutputFile: filepath.Join(t.TempDir(), "statspack"),
	}
	require.NoError(t, ExecuteExport(context.Background(), cfg, contract.FileLoader{}))

	paths := parquet.PathsForPrefix(cfg.OutputFile)
	for _, p := range []string{paths.Performance, paths.Memory, paths.WaitEvents} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size())
	}
}

func TestExportPrefix(t *testing.T) {
	assert.Equal(t, "dumps/prod", ExportPrefix(&contract.Config{ReportPath: "dumps/prod.out"}))
	assert.Equal(t, "dumps/noext", ExportPrefix(&contract.Config{ReportPath: "dumps/noext"}))
	assert.Equal(t, "custom", ExportPrefix(&contract.Config{ReportPath: "dumps/prod.out", OutputFile: "custom"}))
}

func TestExecuteMetrics(t *testing.T) {
	cfg := jsonConfig(t, "")
	require.NoError(t, ExecuteMetrics(context.Background(), cfg, nil))

	var got schema.MetricsRenderModel
	readJSON(t, cfg.OutputFile, &got)
	assert.Len(t, got.Factors, 8)
	assert.Equal(t, DefaultInstanceTiers(), got.Tiers)
}

func TestExecutorsRequireReport(t *testing.T) {
	loader := new(iocache.MockReportLoader)
	for name, exec := range map[string]ExecutorFunc{
		"parse":   ExecuteParse,
		"analyze": ExecuteAnalyze,
		"sga":     ExecuteSGA,
		"check":   ExecuteCheck,
		"export":  ExecuteExport,
	} {
		t.Run(name, func(t *testing.T) {
			err := exec(context.Background(), &contract.Config{}, loader)
			assert.ErrorIs(t, err, ErrNoReport)
		})
	}
	loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestExecuteLoaderError(t *testing.T) {
	loadErr := errors.New("disk on fire")
	loader := new(iocache.MockReportLoader)
	loader.On("Load", mock.Anything, "broken.out").Return(nil, loadErr)

	err := ExecuteAnalyze(context.Background(), &contract.Config{ReportPath: "broken.out"}, loader)
	assert.ErrorIs(t, err, loadErr)
	loader.AssertExpectations(t)
}

func TestExecuteUsesLoaderAndLogger(t *testing.T) {
	res := loadFixture(t, awrFixture)
	loader := new(iocache.MockReportLoader)
	loader.On("Load", mock.Anything, "remote.out").Return(res, nil).Once()

	core, logs := observer.New(zap.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	cfg := jsonConfig(t, "remote.out")
	require.NoError(t, ExecuteAnalyze(ctx, cfg, loader))
	loader.AssertExpectations(t)

	entries := logs.FilterMessage("report loaded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "remote.out", fields["path"])
	assert.Equal(t, "awr", fields["dialect"])
}

func TestExecuteAnalyzeUnknownTarget(t *testing.T) {
	cfg := jsonConfig(t, statspackFixture)
	cfg.Targets = []schema.TargetDatabase{"rds-db2"}
	err := ExecuteAnalyze(context.Background(), cfg, contract.FileLoader{})
	assert.ErrorIs(t, err, ErrUnknownTarget)
}
