package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/awrlens/schema"
)

// WORKLOAD fixed columns; the remainder starts at workloadRestStart.
const (
	workloadHourEnd    = 17
	workloadRankEnd    = 23
	workloadModuleEnd  = 72
	workloadProgramEnd = 121
	workloadEventEnd   = 186
	workloadRestStart  = workloadEventEnd
)

// decodeWorkload reads module/program/event attribution rows.
// Rows without the full remainder are dropped.
func (d *decoder) decodeWorkload(lines []Line) []schema.WorkloadSample {
	out := []schema.WorkloadSample{}
	_, _, rows := splitTable(lines)
	eachRow(d, schema.SectionWorkload, rows, func(ln Line) error {
		runes := []rune(ln.Text)
		if len(runes) <= workloadRestStart {
			return &rowError{kind: schema.FieldCountDiag, msg: fmt.Sprintf("line has %d characters, need more than %d", len(runes), workloadRestStart)}
		}
		rest := strings.Fields(string(runes[workloadRestStart:]))
		if len(rest) < 9 {
			return fieldCountError("at least 9 trailing", len(rest))
		}
		// The wait class runs until the first integer token; the I/O deltas follow it.
		b := 5
		for b < len(rest) && !isInteger(rest[b]) {
			b++
		}
		if len(rest)-b < 4 {
			return fieldCountError("4 I/O deltas after the wait class", len(rest)-b)
		}

		var r fieldReader
		s := schema.WorkloadSample{
			Hour:                strings.TrimSpace(cut(runes, 0, workloadHourEnd)),
			Rank:                r.int("RANK", cut(runes, workloadHourEnd, workloadRankEnd)),
			Module:              strings.TrimSpace(cut(runes, workloadRankEnd, workloadModuleEnd)),
			Program:             strings.TrimSpace(cut(runes, workloadModuleEnd, workloadProgramEnd)),
			Event:               strings.TrimSpace(cut(runes, workloadProgramEnd, workloadEventEnd)),
			InstanceNumber:      r.int("INST", rest[0]),
			SessionType:         rest[1],
			Samples:             r.int64("SAMPLES", rest[2]),
			DBTimeSec:           r.float("DB_TIME_S", rest[3]),
			PctDBTime:           r.float("PCT_DBT", rest[4]),
			WaitClass:           strings.Join(rest[5:b], " "),
			PhysReadReqsDelta:   r.int64("PHYS_READ_REQS", rest[b]),
			PhysWriteReqsDelta:  r.int64("PHYS_WRITE_REQS", rest[b+1]),
			PhysReadBytesDelta:  r.int64("PHYS_READ_BYTES", rest[b+2]),
			PhysWriteBytesDelta: r.int64("PHYS_WRITE_BYTES", rest[b+3]),
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}

// percentileRow is the shape shared by PERCENT-CPU and PERCENT-IO rows.
type percentileRow struct {
	label    string
	inst     int
	values   []float64
	begin    string
	end      string
	hasInst  bool
	keyLabel string
}

// Percentile rows carry 6 required and up to 3 optional numeric fields.
const (
	minPercentileValues = 6
	maxPercentileValues = 9
)

// splitPercentileRow parses "LABEL... [INST] N1..N6 [N7..N9] BEGIN_DATE BEGIN_TIME END_DATE END_TIME".
// instColumn reports whether the header names an instance column. Otherwise an integer
// first field among 7 or more numerics is the instance.
func splitPercentileRow(ln Line, instColumn bool) (percentileRow, error) {
	tokens := strings.Fields(ln.Text)
	n := len(tokens)
	if n < 1+minPercentileValues+4 {
		return percentileRow{}, fieldCountError("at least 11", n)
	}

	labelEnd := 0
	for labelEnd < n-4 && !isNumber(tokens[labelEnd]) {
		labelEnd++
	}
	if labelEnd == 0 {
		return percentileRow{}, &rowError{kind: schema.FieldCountDiag, msg: "missing percentile label"}
	}
	row := percentileRow{
		label: strings.Join(tokens[:labelEnd], " "),
		begin: tokens[n-4] + " " + tokens[n-3],
		end:   tokens[n-2] + " " + tokens[n-1],
	}

	nums := tokens[labelEnd : n-4]
	takeInst := instColumn && len(nums) > 0
	if !takeInst && len(nums) > minPercentileValues {
		_, err := strconv.Atoi(nums[0])
		takeInst = err == nil
	}
	if takeInst {
		inst, err := smallIntField("INST", nums[0])
		if err != nil {
			return percentileRow{}, err
		}
		row.inst, row.hasInst = inst, true
		nums = nums[1:]
	}
	if len(nums) < minPercentileValues || len(nums) > maxPercentileValues {
		return percentileRow{}, fieldCountError("6 to 9 numeric", len(nums))
	}
	row.values = make([]float64, len(nums))
	for i, tok := range nums {
		v, err := floatField(fmt.Sprintf("value %d", i+1), tok)
		if err != nil {
			return percentileRow{}, err
		}
		row.values[i] = v
	}

	row.keyLabel = row.label
	if row.hasInst {
		row.keyLabel = fmt.Sprintf("%s_%d", row.label, row.inst)
	}
	return row, nil
}

// instanceColumnHint reports whether the header names an instance column.
// A header without one proves nothing; rows are still checked for an integer instance.
func instanceColumnHint(header Line) bool {
	for _, f := range strings.Fields(strings.ToUpper(header.Text)) {
		if f == "INST" || f == "INST_ID" || f == "INSTANCE_NUMBER" {
			return true
		}
	}
	return false
}

func isInteger(tok string) bool {
	_, err := strconv.ParseInt(tok, 10, 64)
	return err == nil
}

func optional(values []float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	v := values[i]
	return &v
}

// decodePercentCPU keys rows by label, suffixed with the instance number when present.
// The first row for a key wins.
func (d *decoder) decodePercentCPU(lines []Line) map[string]schema.CPUPercentileSample {
	out := make(map[string]schema.CPUPercentileSample)
	header, _, rows := splitTable(lines)
	hint := instanceColumnHint(header)
	eachRow(d, schema.SectionPercentCPU, rows, func(ln Line) error {
		row, err := splitPercentileRow(ln, hint)
		if err != nil {
			return err
		}
		if _, dup := out[row.keyLabel]; dup {
			return &rowError{kind: schema.DuplicateKeyDiag, msg: fmt.Sprintf("duplicate percentile %s", row.keyLabel)}
		}
		v := row.values
		out[row.keyLabel] = schema.CPUPercentileSample{
			Label:             row.label,
			InstanceNumber:    row.inst,
			OSCPUPct:          v[0],
			OSCPUMaxPct:       v[1],
			CPUPerSec:         v[2],
			HostCPUPerSec:     v[3],
			AvgActiveSessions: v[4],
			DBTimePerSec:      v[5],
			OSLoad:            optional(v, 6),
			NumCPUs:           optional(v, 7),
			OSCPUStdDev:       optional(v, 8),
			BeginInterval:     row.begin,
			EndInterval:       row.end,
		}
		return nil
	})
	return out
}

// decodePercentIO mirrors decodePercentCPU for I/O percentiles.
func (d *decoder) decodePercentIO(lines []Line) map[string]schema.IOPercentileSample {
	out := make(map[string]schema.IOPercentileSample)
	header, _, rows := splitTable(lines)
	hint := instanceColumnHint(header)
	eachRow(d, schema.SectionPercentIO, rows, func(ln Line) error {
		row, err := splitPercentileRow(ln, hint)
		if err != nil {
			return err
		}
		if _, dup := out[row.keyLabel]; dup {
			return &rowError{kind: schema.DuplicateKeyDiag, msg: fmt.Sprintf("duplicate percentile %s", row.keyLabel)}
		}
		v := row.values
		out[row.keyLabel] = schema.IOPercentileSample{
			Label:          row.label,
			InstanceNumber: row.inst,
			ReadIOPS:       v[0],
			WriteIOPS:      v[1],
			TotalIOPS:      v[2],
			ReadMBPerSec:   v[3],
			WriteMBPerSec:  v[4],
			TotalMBPerSec:  v[5],
			RedoMBPerSec:   optional(v, 6),
			ReadLatencyMs:  optional(v, 7),
			WriteLatencyMs: optional(v, 8),
			BeginInterval:  row.begin,
			EndInterval:    row.end,
		}
		return nil
	})
	return out
}
