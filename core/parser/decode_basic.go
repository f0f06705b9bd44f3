package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/awrlens/schema"
)

// decodeOSInfo reads KEY VALUE pairs. Known keys also fill the metadata.
// Header lines before a separator are ignored when one is present.
func (d *decoder) decodeOSInfo(lines []Line, meta *schema.ReportMetadata) map[string]schema.Value {
	info := make(map[string]schema.Value)
	rows := lines
	if hasSeparator(lines) {
		_, _, rows = splitTable(lines)
	}
	for _, ln := range rows {
		fields := strings.Fields(ln.Text)
		if len(fields) == 0 {
			continue
		}
		key := strings.ToUpper(fields[0])
		raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ln.Text), fields[0]))
		if _, dup := info[key]; dup {
			d.note(schema.SectionOSInfo, ln, schema.DuplicateKeyDiag, fmt.Sprintf("duplicate key %s", key))
			continue
		}
		info[key] = ConvertValue(raw)
		if err := applyOSInfo(meta, key, raw); err != nil {
			d.skip(schema.SectionOSInfo, ln, err)
		}
	}
	return info
}

func hasSeparator(lines []Line) bool {
	for _, ln := range lines {
		if isSeparator(ln.Text) {
			return true
		}
	}
	return false
}

// applyOSInfo stores a recognized key into the metadata.
func applyOSInfo(meta *schema.ReportMetadata, key, raw string) error {
	var r fieldReader
	switch key {
	case "DB_NAME":
		meta.DBName = raw
	case "DBID":
		meta.DBID = r.int64(key, raw)
	case "VERSION":
		meta.Version = raw
	case "BANNER":
		meta.Banner = raw
	case "PLATFORM_NAME", "PLATFORM":
		meta.Platform = raw
	case "INSTANCES":
		meta.Instances = r.int(key, raw)
	case "IS_RDS":
		b, err := boolField(key, raw)
		meta.IsRDS, r.err = b, err
	case "TOTAL_DB_SIZE_GB":
		meta.TotalSizeGB = r.float(key, raw)
	case "CHARACTER_SET", "NLS_CHARACTERSET":
		meta.CharacterSet = raw
	case "PLSQL_LINES", "PLSQL_LOC":
		meta.PLSQLLines = r.int64(key, raw)
	case "PLSQL_OBJECTS":
		meta.PLSQLObjects = r.int64(key, raw)
	case "SCHEMA_COUNT":
		meta.SchemaCount = r.int64(key, raw)
	case "OBJECT_COUNT":
		meta.ObjectCount = r.int64(key, raw)
	case "NUM_CPUS":
		meta.NumCPUs = r.int(key, raw)
	case "NUM_CPU_CORES":
		meta.NumCPUCores = r.int(key, raw)
	case "PHYSICAL_MEMORY_GB":
		meta.PhysicalMemoryGB = r.float(key, raw)
	}
	return r.err
}

// fixedRow splits a data row on whitespace and checks its arity.
func fixedRow(ln Line, arity int) ([]string, error) {
	fields := strings.Fields(ln.Text)
	if len(fields) != arity {
		return nil, fieldCountError(strconv.Itoa(arity), len(fields))
	}
	return fields, nil
}

func (d *decoder) decodeMemory(lines []Line) []schema.MemorySample {
	out := []schema.MemorySample{}
	_, _, rows := splitTable(lines)
	eachRow(d, schema.SectionMemory, rows, func(ln Line) error {
		f, err := fixedRow(ln, 5)
		if err != nil {
			return err
		}
		var r fieldReader
		s := schema.MemorySample{
			SnapID:         r.int64("SNAP_ID", f[0]),
			InstanceNumber: r.int("INSTANCE_NUMBER", f[1]),
			SGAGB:          r.float("SGA_GB", f[2]),
			PGAGB:          r.float("PGA_GB", f[3]),
			TotalGB:        r.float("TOTAL_GB", f[4]),
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}

func (d *decoder) decodeDisk(lines []Line) []schema.DiskSample {
	out := []schema.DiskSample{}
	_, _, rows := splitTable(lines)
	eachRow(d, schema.SectionSizeOnDisk, rows, func(ln Line) error {
		f, err := fixedRow(ln, 2)
		if err != nil {
			return err
		}
		var r fieldReader
		s := schema.DiskSample{
			SnapID: r.int64("SNAP_ID", f[0]),
			SizeGB: r.float("SIZE_GB", f[1]),
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}

func (d *decoder) decodeSGAAdvice(lines []Line) []schema.SGATuningSample {
	out := []schema.SGATuningSample{}
	_, _, rows := splitTable(lines)
	eachRow(d, schema.SectionSGAAdvice, rows, func(ln Line) error {
		f, err := fixedRow(ln, 7)
		if err != nil {
			return err
		}
		var r fieldReader
		s := schema.SGATuningSample{
			InstanceID:       r.int("INST_ID", f[0]),
			SGASizeMB:        r.float("SGA_SIZE", f[1]),
			SizeFactor:       r.float("SGA_SIZE_FACTOR", f[2]),
			EstDBTime:        r.float("ESTD_DB_TIME", f[3]),
			EstDBTimeFactor:  r.float("ESTD_DB_TIME_FACTOR", f[4]),
			EstPhysicalReads: r.float("ESTD_PHYSICAL_READS", f[5]),
			SGATargetMB:      r.float("SGA_TARGET", f[6]),
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}

func (d *decoder) decodeSysStat(lines []Line) []schema.SysStatSample {
	out := []schema.SysStatSample{}
	_, _, rows := splitTable(lines)
	eachRow(d, schema.SectionSysStat, rows, func(ln Line) error {
		f, err := fixedRow(ln, 7)
		if err != nil {
			return err
		}
		var r fieldReader
		s := schema.SysStatSample{
			SnapID:          r.int64("SNAP_ID", f[0]),
			InstanceNumber:  r.int("INST", f[1]),
			ExecsPerSec:     r.float("EXECS_S", f[2]),
			UserCallsPerSec: r.float("USER_CALLS_S", f[3]),
			LogonsPerSec:    r.float("LOGONS_S", f[4]),
			ParsesPerSec:    r.float("PARSES_S", f[5]),
			RedoMBPerSec:    r.float("REDO_MB_S", f[6]),
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}

func (d *decoder) decodeBufferCache(lines []Line) []schema.BufferCacheSample {
	out := []schema.BufferCacheSample{}
	_, _, rows := splitTable(lines)
	eachRow(d, schema.SectionBufferCache, rows, func(ln Line) error {
		f, err := fixedRow(ln, 4)
		if err != nil {
			return err
		}
		var r fieldReader
		s := schema.BufferCacheSample{
			SnapID:         r.int64("SNAP_ID", f[0]),
			InstanceNumber: r.int("INST", f[1]),
			HitRatio:       r.float("HIT_RATIO", f[2]),
			CacheSizeMB:    r.float("CACHE_SIZE_MB", f[3]),
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}

// decodeIOFunctions reads rows whose function name may span several words.
func (d *decoder) decodeIOFunctions(lines []Line) []schema.IOFunctionSample {
	out := []schema.IOFunctionSample{}
	_, _, rows := splitTable(lines)
	eachRow(d, schema.SectionIOStatFunction, rows, func(ln Line) error {
		f := strings.Fields(ln.Text)
		if len(f) < 5 {
			return fieldCountError("at least 5", len(f))
		}
		n := len(f)
		var r fieldReader
		s := schema.IOFunctionSample{
			SnapID:        r.int64("SNAP_ID", f[0]),
			FunctionName:  strings.Join(f[1:n-3], " "),
			ReadMBPerSec:  r.float("READ_MB_S", f[n-3]),
			WriteMBPerSec: r.float("WRITE_MB_S", f[n-2]),
			TotalMBPerSec: r.float("TOTAL_MB_S", f[n-1]),
		}
		if r.err != nil {
			return r.err
		}
		out = append(out, s)
		return nil
	})
	return out
}
