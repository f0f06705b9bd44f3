package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/huangsam/awrlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toLines(text string) []Line {
	var out []Line
	for i, s := range strings.Split(strings.Trim(text, "\n"), "\n") {
		out = append(out, Line{No: i + 1, Text: s})
	}
	return out
}

func TestSplitTable(t *testing.T) {
	header, sep, rows := splitTable(toLines("title\nA B\n--- ---\n1 2\n--- ---\n3 4"))
	assert.Equal(t, "A B", header.Text)
	assert.Equal(t, "--- ---", sep.Text)
	assert.Equal(t, []string{"1 2", "3 4"}, lineTexts(rows))

	_, _, rows = splitTable(toLines("A B\n1 2"))
	assert.Nil(t, rows)
}

func TestDashGroupsAndCut(t *testing.T) {
	assert.Equal(t, []int{0, 5, 9}, dashGroups("---- --- -----"))
	assert.Empty(t, dashGroups("   "))

	runes := []rune("hello")
	assert.Equal(t, "ell", cut(runes, 1, 4))
	assert.Equal(t, "llo", cut(runes, 2, -1))
	assert.Equal(t, "", cut(runes, 9, 12))
	assert.Equal(t, "", cut(runes, 3, 2))
}

func TestNewTableWhitespaceFallback(t *testing.T) {
	tbl := newTable(Line{Text: "snap cpu"}, Line{Text: "---------"}, nil)
	assert.False(t, tbl.spanned())
	assert.Equal(t, 1, tbl.index("CPU"))

	f, err := tbl.fields(Line{Text: "1 2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, f)

	_, err = tbl.fields(Line{Text: "1 2 3"})
	assert.Error(t, err)

	tbl = newTable(Line{}, Line{Text: "----"}, []string{"X", "Y"})
	assert.Equal(t, []string{"X", "Y"}, tbl.names)
}

func TestDecodeOSInfoDuplicateKey(t *testing.T) {
	d := newDecoder(nil)
	var meta schema.ReportMetadata
	info := d.decodeOSInfo(toLines("DB_NAME ONE\nDB_NAME TWO\nINSTANCES two\nIS_RDS YES"), &meta)

	assert.Equal(t, "ONE", meta.DBName)
	assert.True(t, meta.IsRDS)
	assert.Equal(t, schema.StringValue("ONE"), info["DB_NAME"])
	assert.Equal(t, schema.StringValue("two"), info["INSTANCES"], "raw value is kept even when it does not convert")
	require.Len(t, d.diags, 2)
	assert.Equal(t, schema.DuplicateKeyDiag, d.diags[0].Kind)
	assert.Equal(t, 2, d.diags[0].Line)
	assert.Equal(t, schema.ConversionDiag, d.diags[1].Kind)
}

func TestDecodeFixedRowArity(t *testing.T) {
	d := newDecoder(nil)
	out := d.decodeDisk(toLines("SNAP SIZE\n---- ----\n1 2.5\n2\n3 4 5\nx 1"))
	require.Len(t, out, 1)
	assert.Equal(t, schema.DiskSample{SnapID: 1, SizeGB: 2.5}, out[0])

	require.Len(t, d.diags, 3)
	assert.Equal(t, schema.FieldCountDiag, d.diags[0].Kind)
	assert.Equal(t, schema.FieldCountDiag, d.diags[1].Kind)
	assert.Equal(t, schema.ConversionDiag, d.diags[2].Kind)
	assert.Equal(t, 3, d.diags.BySection()[schema.SectionSizeOnDisk])
}

func TestDecodeMainMetricsMissingSnap(t *testing.T) {
	d := newDecoder(nil)
	out := d.decodeMainMetrics(toLines("INST CPU_PER_S\n---- ---------\n1    2.0"))
	assert.Empty(t, out)
	require.Len(t, d.diags, 1)
	assert.Equal(t, schema.MissingColumnDiag, d.diags[0].Kind)
	assert.Equal(t, 1, d.diags[0].Line)
}

func TestDecodeMainMetricsWhitespace(t *testing.T) {
	d := newDecoder(nil)
	out := d.decodeMainMetrics(toLines("SNAP OS_CPU CPU_PER_S READ_IOPS\n---------------------------------\n7 55.5 1.5 100\n8 60 bad 100"))
	require.Len(t, out, 1)
	assert.Equal(t, int64(7), out[0].SnapID)
	require.NotNil(t, out[0].OSCPUPct)
	assert.Equal(t, 55.5, *out[0].OSCPUPct)
	assert.Equal(t, 100.0, out[0].ReadIOPS)
	assert.Equal(t, 0.0, out[0].WriteIOPS, "absent column reads as zero")
	require.Len(t, d.diags, 1)
	assert.Equal(t, schema.ConversionDiag, d.diags[0].Kind)
}

func TestSplitWaitEventRow(t *testing.T) {
	s, err := splitWaitEventRow(Line{Text: "101 User I/O db file sequential read 20.5 300"})
	require.NoError(t, err)
	assert.Equal(t, "User I/O", s.WaitClass)
	assert.Equal(t, "db file sequential read", s.EventName)
	assert.Equal(t, 20.5, s.PctDBTime)

	s, err = splitWaitEventRow(Line{Text: "101 Commit log file sync 5 60"})
	require.NoError(t, err)
	assert.Equal(t, "Commit", s.WaitClass)
	assert.Equal(t, "log file sync", s.EventName)

	_, err = splitWaitEventRow(Line{Text: "101 Commit 5 60"})
	assert.Error(t, err)
}

func TestDecodeFeaturesOrphanContinuation(t *testing.T) {
	d := newDecoder(nil)
	lines := toLines("FEATURE_NAME\n----------\n   stray info\n" +
		padName("Spatial") + "2 10 TRUE\n" +
		"   more about spatial\n" +
		padName("Broken") + "x y z")
	out := d.decodeFeatures(lines)

	require.Len(t, out, 1)
	assert.Equal(t, "Spatial", out[0].Name)
	assert.True(t, strings.HasPrefix(out[0].Info, "more about spatial Broken"), out[0].Info)
	assert.True(t, strings.HasSuffix(out[0].Info, "x y z"), out[0].Info)
	require.Len(t, d.diags, 1)
	assert.Equal(t, schema.OrphanContinuationDiag, d.diags[0].Kind)
}

func padName(name string) string {
	return name + strings.Repeat(" ", featureNameWidth-len(name))
}

func TestParseFeatureRowDates(t *testing.T) {
	tests := []struct {
		rest string
		date string
		info string
	}{
		{rest: "1 2 TRUE 02-Jan-24 some info", date: "02-Jan-24", info: "some info"},
		{rest: "1 2 FALSE 2024/01/02 10:11:12", date: "2024/01/02 10:11:12"},
		{rest: "1 2 TRUE 4.5 details", info: "details"},
	}
	for _, tt := range tests {
		t.Run(tt.rest, func(t *testing.T) {
			rec, ok := parseFeatureRow(padName("Feature") + tt.rest)
			require.True(t, ok)
			assert.Equal(t, tt.date, rec.LastSampleDate)
			assert.Equal(t, tt.info, rec.Info)
		})
	}
}

func TestSplitPercentileRow(t *testing.T) {
	row, err := splitPercentileRow(Line{Text: "P95 2 1 2 3 4 5 6 2024-01-01 10:00 2024-01-01 11:00"}, true)
	require.NoError(t, err)
	assert.Equal(t, "P95_2", row.keyLabel)
	assert.Len(t, row.values, 6)

	row, err = splitPercentileRow(Line{Text: "P95 2 1 2 3 4 5 6 2024-01-01 10:00 2024-01-01 11:00"}, false)
	require.NoError(t, err)
	assert.Equal(t, "P95_2", row.keyLabel, "an integer among 7 numerics is the instance")
	assert.Len(t, row.values, 6)

	row, err = splitPercentileRow(Line{Text: "P95 2.5 1 2 3 4 5 6 2024-01-01 10:00 2024-01-01 11:00"}, false)
	require.NoError(t, err)
	assert.Equal(t, "P95", row.keyLabel)
	assert.Len(t, row.values, 7)

	row, err = splitPercentileRow(Line{Text: "P95 2 1 2 3 4 5 2024-01-01 10:00 2024-01-01 11:00"}, false)
	require.NoError(t, err)
	assert.Equal(t, "P95", row.keyLabel, "six numerics leave no room for an instance")
	assert.Equal(t, 2.0, row.values[0])

	row, err = splitPercentileRow(Line{Text: "Max Value 3 1 2 3 4 5 6 7 2024-01-01 10:00 2024-01-01 11:00"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Max Value", row.label)
	assert.Equal(t, 3, row.inst)
	assert.Len(t, row.values, 7)

	_, err = splitPercentileRow(Line{Text: "P95 1 2 3 2024-01-01 10:00 2024-01-01 11:00"}, false)
	assert.Error(t, err)
}

func TestInstanceColumnHint(t *testing.T) {
	assert.True(t, instanceColumnHint(Line{Text: "STAT inst OS_CPU"}))
	assert.True(t, instanceColumnHint(Line{Text: "STAT INSTANCE_NUMBER OS_CPU"}))
	assert.False(t, instanceColumnHint(Line{Text: "STAT INST_NO OS_CPU"}))
	assert.False(t, instanceColumnHint(Line{}))
}

func TestDecodePercentCPUUnlistedInstanceHeader(t *testing.T) {
	d := newDecoder(nil)
	out := d.decodePercentCPU(toLines("STAT INST_NO OS_CPU OS_CPU_MAX CPU_PER_S H_CPU_PER_S AAS DB_TIME_PER_S OS_LOAD BEGIN_INTERVAL END_INTERVAL
" +
		"---- ------- ------ ---------- --------- ----------- --- ------------- ------- -------------- ------------
" +
		"P99 1 95.0 99.0 15.2 15.6 20.1 18.3 6.2 2024-02-01 10:00 2024-02-01 11:00
" +
		"P99 2 96.0 99.5 15.4 15.8 20.5 18.9 6.4 2024-02-01 10:00 2024-02-01 11:00"))
	assert.Empty(t, d.diags)
	require.Len(t, out, 2)

	first := out["P99_1"]
	assert.Equal(t, 1, first.InstanceNumber)
	assert.Equal(t, 95.0, first.OSCPUPct)
	assert.Equal(t, 18.3, first.DBTimePerSec)
	require.NotNil(t, first.OSLoad)
	assert.Equal(t, 6.2, *first.OSLoad)
	assert.Nil(t, first.NumCPUs)
	assert.Equal(t, 96.0, out["P99_2"].OSCPUPct)
}

func TestDecodePercentCPUDuplicate(t *testing.T) {
	d := newDecoder(nil)
	out := d.decodePercentCPU(toLines("STAT OS_CPU\n---- ------\n" +
		"P99 1 2 3 4 5 6 2024-01-01 10:00 2024-01-01 11:00\n" +
		"P99 9 9 9 9 9 9 2024-01-01 10:00 2024-01-01 11:00"))
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out["P99"].OSCPUPct, "first row wins")
	require.Len(t, d.diags, 1)
	assert.Equal(t, schema.DuplicateKeyDiag, d.diags[0].Kind)
}

func TestDecodeWorkloadShortRow(t *testing.T) {
	d := newDecoder(nil)
	out := d.decodeWorkload(toLines("HOUR\n----\n24-01-01 10      1     APP"))
	assert.Empty(t, out)
	require.Len(t, d.diags, 1)
	assert.Equal(t, schema.FieldCountDiag, d.diags[0].Kind)
}

func TestDecodeWorkloadWaitClassBoundary(t *testing.T) {
	prefix := fmt.Sprintf("%-17s%-6s%-49s%-49s%-65s", "24-02-01 10", "1", "SALES_BATCH", "sqlplus@app01", "db file scattered read")
	d := newDecoder(nil)
	out := d.decodeWorkload(toLines("HOUR\n----\n" +
		prefix + "1 FOREGROUND 1200 12000 40.0 User I/O 50000 1200 409600000 9830400 7\n" +
		prefix + "2 FOREGROUND 600 6000 20.0 CPU 100 50 819200\n" +
		prefix + "1 BACKGROUND 10 100 1.0 1 2 3 4"))
	require.Len(t, out, 2)
	require.Len(t, d.diags, 1)
	assert.Equal(t, 4, d.diags[0].Line, "three deltas are not enough")

	w := out[0]
	assert.Equal(t, "SALES_BATCH", w.Module)
	assert.Equal(t, "User I/O", w.WaitClass)
	assert.Equal(t, int64(50000), w.PhysReadReqsDelta)
	assert.Equal(t, int64(1200), w.PhysWriteReqsDelta)
	assert.Equal(t, int64(409600000), w.PhysReadBytesDelta)
	assert.Equal(t, int64(9830400), w.PhysWriteBytesDelta)

	assert.Equal(t, "", out[1].WaitClass, "a wait class may be empty")
	assert.Equal(t, int64(4), out[1].PhysWriteBytesDelta)
}

func TestDecodeIOFunctions(t *testing.T) {
	d := newDecoder(nil)
	out := d.decodeIOFunctions(toLines("SNAP FN R W T\n---- --\n1 Direct Reads 1 2 3\n2 X 1 2"))
	require.Len(t, out, 1)
	assert.Equal(t, "Direct Reads", out[0].FunctionName)
	assert.Equal(t, 3.0, out[0].TotalMBPerSec)
	require.Len(t, d.diags, 1)
}
