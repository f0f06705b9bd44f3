// Package parquet provides data structures and functions for exporting report
// samples to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/awrlens/schema"
	"github.com/parquet-go/parquet-go"
)

// File suffixes appended to the export prefix.
const (
	PerformanceSuffix = ".performance.parquet"
	MemorySuffix      = ".memory.parquet"
	WaitEventsSuffix  = ".wait_events.parquet"
)

// PerformanceRow is one MAIN-METRICS sample.
type PerformanceRow struct {
	// Source is the dump the sample was read from
	Source string `parquet:"source,snappy"`

	SnapID         int64   `parquet:"snap_id,snappy"`
	InstanceNumber int32   `parquet:"instance_number,snappy"`
	EndTime        string  `parquet:"end_time,snappy"`
	DurationMin    float64 `parquet:"duration_min,snappy"`

	// OSCPUPct is nil when the dump has no os_cpu column
	OSCPUPct *float64 `parquet:"os_cpu_pct,optional,snappy"`

	CPUPerSec     float64 `parquet:"cpu_per_s,snappy"`
	HostCPUPerSec float64 `parquet:"host_cpu_per_s,snappy"`
	ReadIOPS      float64 `parquet:"read_iops,snappy"`
	WriteIOPS     float64 `parquet:"write_iops,snappy"`
	ReadMBPerSec  float64 `parquet:"read_mb_s,snappy"`
	WriteMBPerSec float64 `parquet:"write_mb_s,snappy"`
	CommitsPerSec float64 `parquet:"commits_s,snappy"`
}

// MemoryRow is one MEMORY sample.
type MemoryRow struct {
	Source         string  `parquet:"source,snappy"`
	SnapID         int64   `parquet:"snap_id,snappy"`
	InstanceNumber int32   `parquet:"instance_number,snappy"`
	SGAGB          float64 `parquet:"sga_gb,snappy"`
	PGAGB          float64 `parquet:"pga_gb,snappy"`
	TotalGB        float64 `parquet:"total_gb,snappy"`
}

// WaitEventRow is one TOP-N-TIMED-EVENTS sample.
type WaitEventRow struct {
	Source       string  `parquet:"source,snappy"`
	SnapID       int64   `parquet:"snap_id,snappy"`
	WaitClass    string  `parquet:"wait_class,snappy"`
	EventName    string  `parquet:"event_name,snappy"`
	PctDBTime    float64 `parquet:"pct_db_time,snappy"`
	TotalWaitSec float64 `parquet:"total_wait_s,snappy"`
}

// ExportPaths lists the files written by ExportReport.
type ExportPaths struct {
	Performance string `json:"performance" yaml:"performance"`
	Memory      string `json:"memory" yaml:"memory"`
	WaitEvents  string `json:"wait_events" yaml:"wait_events"`
}

// PathsForPrefix returns the three output paths for an export prefix.
func PathsForPrefix(prefix string) ExportPaths {
	return ExportPaths{
		Performance: prefix + PerformanceSuffix,
		Memory:      prefix + MemorySuffix,
		WaitEvents:  prefix + WaitEventsSuffix,
	}
}

// writeRows writes a slice of rows to a Parquet file whose schema is inferred from T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// WritePerformanceParquet writes performance rows to a Parquet file.
func WritePerformanceParquet(data []PerformanceRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteMemoryParquet writes memory rows to a Parquet file.
func WriteMemoryParquet(data []MemoryRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteWaitEventsParquet writes wait event rows to a Parquet file.
func WriteWaitEventsParquet(data []WaitEventRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// ExportReport writes the performance, memory and wait event samples of a
// report next to each other under prefix. Empty collections still produce a
// file with the schema.
func ExportReport(model *schema.ReportModel, prefix string) (ExportPaths, error) {
	paths := PathsForPrefix(prefix)
	if err := WritePerformanceParquet(ConvertPerformance(model), paths.Performance); err != nil {
		return paths, err
	}
	if err := WriteMemoryParquet(ConvertMemory(model), paths.Memory); err != nil {
		return paths, err
	}
	if err := WriteWaitEventsParquet(ConvertWaitEvents(model), paths.WaitEvents); err != nil {
		return paths, err
	}
	return paths, nil
}

// ConvertPerformance converts schema.PerformanceSample to PerformanceRow for Parquet export.
func ConvertPerformance(model *schema.ReportModel) []PerformanceRow {
	result := make([]PerformanceRow, len(model.Performance))
	for i, s := range model.Performance {
		result[i] = PerformanceRow{
			Source:         model.Source,
			SnapID:         s.SnapID,
			InstanceNumber: int32(s.InstanceNumber),
			EndTime:        s.EndTime,
			DurationMin:    s.DurationMin,
			OSCPUPct:       s.OSCPUPct,
			CPUPerSec:      s.CPUPerSec,
			HostCPUPerSec:  s.HostCPUPerSec,
			ReadIOPS:       s.ReadIOPS,
			WriteIOPS:      s.WriteIOPS,
			ReadMBPerSec:   s.ReadMBPerSec,
			WriteMBPerSec:  s.WriteMBPerSec,
			CommitsPerSec:  s.CommitsPerSec,
		}
	}
	return result
}

// ConvertMemory converts schema.MemorySample to MemoryRow for Parquet export.
func ConvertMemory(model *schema.ReportModel) []MemoryRow {
	result := make([]MemoryRow, len(model.Memory))
	for i, s := range model.Memory {
		result[i] = MemoryRow{
			Source:         model.Source,
			SnapID:         s.SnapID,
			InstanceNumber: int32(s.InstanceNumber),
			SGAGB:          s.SGAGB,
			PGAGB:          s.PGAGB,
			TotalGB:        s.TotalGB,
		}
	}
	return result
}

// ConvertWaitEvents converts schema.WaitEventSample to WaitEventRow for Parquet export.
func ConvertWaitEvents(model *schema.ReportModel) []WaitEventRow {
	result := make([]WaitEventRow, len(model.WaitEvents))
	for i, s := range model.WaitEvents {
		result[i] = WaitEventRow{
			Source:       model.Source,
			SnapID:       s.SnapID,
			WaitClass:    s.WaitClass,
			EventName:    s.EventName,
			PctDBTime:    s.PctDBTime,
			TotalWaitSec: s.TotalWaitSec,
		}
	}
	return result
}
