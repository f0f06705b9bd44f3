package parser

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/huangsam/awrlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

const (
	statspackFixture = "testdata/statspack_se2.out"
	awrFixture       = "testdata/awr_rac_ee.out"
)

func parseFixture(t *testing.T, path string) *Result {
	t.Helper()
	res, err := ParseFile(path)
	require.NoError(t, err)
	require.NotNil(t, res.Model)
	return res
}

func TestParseFileStatspack(t *testing.T) {
	res := parseFixture(t, statspackFixture)
	m := res.Model

	assert.Equal(t, statspackFixture, m.Source)
	assert.Equal(t, schema.StatspackDialect, m.Dialect())
	assert.False(t, m.IsAWR())
	assert.Nil(t, m.AWR)

	meta := m.Metadata
	assert.Equal(t, "ORCL", meta.DBName)
	assert.Equal(t, int64(1234567890), meta.DBID)
	assert.Equal(t, "12.2.0.1.0", meta.Version)
	assert.Contains(t, meta.Banner, "Standard Edition 2")
	assert.Equal(t, "Linux x86 64-bit", meta.Platform)
	assert.Equal(t, 1, meta.Instances)
	assert.False(t, meta.IsRDS)
	assert.Equal(t, 250.5, meta.TotalSizeGB)
	assert.Equal(t, int64(60000), meta.PLSQLLines)
	assert.Equal(t, int64(400), meta.PLSQLObjects)
	assert.Equal(t, 8, meta.NumCPUs)
	assert.Equal(t, 4, meta.NumCPUCores)
	assert.Equal(t, 32.0, meta.PhysicalMemoryGB)
	assert.Equal(t, "AL32UTF8", meta.CharacterSet, "charset comes from the Character Set feature")

	assert.Len(t, m.OSInfo, 13)
	assert.Equal(t, schema.StringValue("ORCL"), m.OSInfo["DB_NAME"])
	assert.Equal(t, schema.IntValue(8), m.OSInfo["NUM_CPUS"])
	assert.Equal(t, schema.FloatValue(250.5), m.OSInfo["TOTAL_DB_SIZE_GB"])
	assert.Equal(t, schema.BoolValue(false), m.OSInfo["IS_RDS"])

	require.Len(t, m.Memory, 2)
	assert.Equal(t, schema.MemorySample{SnapID: 102, InstanceNumber: 1, SGAGB: 8, PGAGB: 4, TotalGB: 12}, m.Memory[1])
	require.Len(t, m.Disk, 2)
	assert.Equal(t, 250.5, m.Disk[1].SizeGB)

	require.Len(t, m.Performance, 3)
	first := m.Performance[0]
	assert.Equal(t, int64(101), first.SnapID)
	assert.Equal(t, 1, first.InstanceNumber)
	assert.Equal(t, "24-01-01 10:00", first.EndTime)
	assert.Equal(t, 60.0, first.DurationMin)
	require.NotNil(t, first.OSCPUPct)
	assert.Equal(t, 40.0, *first.OSCPUPct)
	assert.Equal(t, 3.2, first.CPUPerSec)
	assert.Equal(t, 1200.0, first.ReadIOPS)
	assert.Equal(t, 150.0, first.CommitsPerSec)
	assert.Nil(t, m.Performance[2].OSCPUPct, "blank OS_CPU stays absent")
	assert.Equal(t, 4.8, m.Performance[2].CPUPerSec)

	require.Len(t, m.WaitEvents, 4)
	assert.Equal(t, "DB CPU", m.WaitEvents[0].WaitClass)
	assert.Equal(t, "User I/O", m.WaitEvents[1].WaitClass)
	assert.Equal(t, "db file sequential read", m.WaitEvents[1].EventName)
	assert.Equal(t, 20.0, m.WaitEvents[1].PctDBTime)
	assert.Equal(t, 720.0, m.WaitEvents[1].TotalWaitSec)

	require.Len(t, m.SysStats, 2)
	assert.Equal(t, 850.5, m.SysStats[0].ExecsPerSec)
	assert.Equal(t, 2.8, m.SysStats[1].RedoMBPerSec)

	require.Len(t, m.SGAAdvice, 5)
	assert.Equal(t, 0.75, m.SGAAdvice[1].SizeFactor)
	assert.Equal(t, 4096.0, m.SGAAdvice[1].SGATargetMB)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, schema.SectionMemory, d.Section)
	assert.Equal(t, schema.ConversionDiag, d.Kind)
	assert.Equal(t, 27, d.Line)
	assert.Contains(t, d.Text, "bad")
}

func TestParseFileFeatures(t *testing.T) {
	res := parseFixture(t, statspackFixture)
	features := res.Model.Features
	require.Len(t, features, 5)

	part := features[0]
	assert.Equal(t, "Partitioning (user)", part.Name)
	assert.Equal(t, int64(12), part.DetectedUsages)
	assert.Equal(t, int64(20), part.TotalSamples)
	assert.True(t, part.CurrentlyUsed)
	require.NotNil(t, part.AuxCount)
	assert.Equal(t, 3.0, *part.AuxCount)
	assert.Equal(t, "2024-01-01", part.LastSampleDate)
	assert.Equal(t, "tables=14", part.Info)

	assert.Equal(t, "Character Set", features[1].Name)
	assert.Nil(t, features[1].AuxCount)
	assert.Equal(t, "AL32UTF8", features[1].Info)

	aq := features[2]
	assert.Equal(t, "2024-01-01 10:00:00", aq.LastSampleDate)
	assert.Equal(t, "queues=2 queue tables in APP schema", aq.Info, "continuation line is appended")

	assert.False(t, features[3].CurrentlyUsed)
	assert.Len(t, res.Model.CurrentFeatures(), 4)
}

func TestParseFileAWR(t *testing.T) {
	res := parseFixture(t, awrFixture)
	m := res.Model

	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, schema.AWRDialect, m.Dialect())
	require.NotNil(t, m.AWR)
	assert.Equal(t, 2, m.Metadata.Instances)
	assert.Equal(t, "WE8ISO8859P1", m.Metadata.CharacterSet)

	require.Len(t, m.Performance, 4)
	assert.Equal(t, 2, m.Performance[1].InstanceNumber)

	awr := m.AWR
	require.Len(t, awr.IOFunctions, 3)
	assert.Equal(t, "Buffer Cache Reads", awr.IOFunctions[0].FunctionName)
	assert.Equal(t, "Smart Scan", awr.IOFunctions[1].FunctionName)
	assert.Equal(t, 120.0, awr.IOFunctions[1].TotalMBPerSec)

	require.Len(t, awr.CPUPercentiles, 3)
	p99 := awr.CPUPercentiles["P99_1"]
	assert.Equal(t, "P99", p99.Label)
	assert.Equal(t, 1, p99.InstanceNumber)
	assert.Equal(t, 95.0, p99.OSCPUPct)
	require.NotNil(t, p99.OSCPUStdDev)
	assert.Equal(t, 3.1, *p99.OSCPUStdDev)
	assert.Equal(t, "2024-02-01 10:00", p99.BeginInterval)
	assert.Equal(t, "2024-02-01 11:00", p99.EndInterval)
	assert.Contains(t, awr.CPUPercentiles, "P99_2")
	assert.Contains(t, awr.CPUPercentiles, "AVG_1")

	require.Len(t, awr.IOPercentiles, 2)
	io := awr.IOPercentiles["P99"]
	assert.Equal(t, 12600.0, io.TotalIOPS)
	require.NotNil(t, io.RedoMBPerSec)
	assert.Equal(t, 13.0, *io.RedoMBPerSec)
	assert.Nil(t, io.ReadLatencyMs)

	require.Len(t, awr.Workload, 3)
	w := awr.Workload[0]
	assert.Equal(t, "24-02-01 10", w.Hour)
	assert.Equal(t, 1, w.Rank)
	assert.Equal(t, "SALES_BATCH", w.Module)
	assert.Equal(t, "sqlplus@app01 (TNS V1-V3)", w.Program)
	assert.Equal(t, "db file scattered read", w.Event)
	assert.Equal(t, "FOREGROUND", w.SessionType)
	assert.Equal(t, int64(1200), w.Samples)
	assert.Equal(t, 40.0, w.PctDBTime)
	assert.Equal(t, "User I/O", w.WaitClass)
	assert.Equal(t, int64(409600000), w.PhysReadBytesDelta)
	assert.Equal(t, "CPU", awr.Workload[1].WaitClass)

	require.Len(t, awr.BufferCache, 3)
	assert.Equal(t, 85.5, awr.BufferCache[1].HitRatio)
}

func TestParseTextNoSections(t *testing.T) {
	_, err := ParseText("just some text\nwithout markers\n", "x")
	assert.ErrorIs(t, err, ErrNoSections)

	_, err = ParseText("", "empty")
	assert.ErrorIs(t, err, ErrNoSections)
}

func TestParseTextEmptySections(t *testing.T) {
	res, err := ParseText("~~BEGIN-MEMORY~~\n~~END-MEMORY~~\n", "empty")
	require.NoError(t, err)
	m := res.Model

	assert.NotNil(t, m.OSInfo)
	assert.NotNil(t, m.Memory)
	assert.NotNil(t, m.Performance)
	assert.NotNil(t, m.Features)
	assert.Empty(t, m.Memory)
	assert.Nil(t, m.AWR)
	assert.Empty(t, res.Diagnostics)
}

func TestParseReader(t *testing.T) {
	data, err := os.ReadFile(statspackFixture)
	require.NoError(t, err)

	res, err := Parse(strings.NewReader(string(data)), "stdin")
	require.NoError(t, err)
	assert.Equal(t, "stdin", res.Model.Source)
	assert.Len(t, res.Model.Performance, 3)
}

func TestParseFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseFile(filepath.Join(dir, "missing.out"))
	assert.ErrorIs(t, err, ErrNotFound)
	var fe *FileError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, filepath.Join(dir, "missing.out"), fe.Path)

	_, err = ParseFile(dir)
	assert.ErrorIs(t, err, ErrIsDirectory)

	plain := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("no markers here"), 0o644))
	_, err = ParseFile(plain)
	assert.ErrorIs(t, err, ErrNoSections)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, plain, fe.Path)
}

func TestParseFileLatin1(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.out")
	// 0xE9 is "é" in ISO-8859-1 and invalid on its own in UTF-8.
	content := []byte("~~BEGIN-OS-INFORMATION~~\nDB_NAME CAF\xE9\n~~END-OS-INFORMATION~~\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	res, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CAFé", res.Model.Metadata.DBName)
}

func TestParseTextStripsBOM(t *testing.T) {
	text, err := decodeText(append([]byte{0xEF, 0xBB, 0xBF}, []byte("~~BEGIN-MEMORY~~")...))
	require.NoError(t, err)
	assert.Equal(t, "~~BEGIN-MEMORY~~", text)
}

func TestParseWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := ParseFile(statspackFixture, WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("skipping row").Len())
	entries := logs.FilterMessage("parsed report").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["diagnostics"])
}

func TestResultRoundTrip(t *testing.T) {
	res := parseFixture(t, awrFixture)
	opts := []cmp.Option{cmpopts.EquateEmpty()}

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(res)
		require.NoError(t, err)
		var back Result
		require.NoError(t, json.Unmarshal(data, &back))
		if diff := cmp.Diff(res, &back, opts...); diff != "" {
			t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(res)
		require.NoError(t, err)
		var back Result
		require.NoError(t, yaml.Unmarshal(data, &back))
		if diff := cmp.Diff(res, &back, opts...); diff != "" {
			t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestFileErrorUnwrap(t *testing.T) {
	err := &FileError{Path: "/tmp/x", Err: ErrPermission}
	assert.True(t, errors.Is(err, ErrPermission))
	assert.Equal(t, "/tmp/x: report file permission denied", err.Error())
}
