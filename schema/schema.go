// Package schema has the report model, analysis results and typed constants for all parts of awrlens.
package schema

// ReportMetadata holds the scalar facts found in the OS-INFORMATION and FEATURES sections.
type ReportMetadata struct {
	DBName           string  `json:"db_name" yaml:"db_name"`
	DBID             int64   `json:"dbid" yaml:"dbid"`
	Version          string  `json:"version" yaml:"version"`
	Banner           string  `json:"banner" yaml:"banner"`
	Platform         string  `json:"platform" yaml:"platform"`
	Instances        int     `json:"instances" yaml:"instances"` // 0 when not reported
	IsRDS            bool    `json:"is_rds" yaml:"is_rds"`
	TotalSizeGB      float64 `json:"total_size_gb" yaml:"total_size_gb"`
	CharacterSet     string  `json:"character_set" yaml:"character_set"`
	PLSQLLines       int64   `json:"plsql_lines" yaml:"plsql_lines"`
	PLSQLObjects     int64   `json:"plsql_objects" yaml:"plsql_objects"`
	SchemaCount      int64   `json:"schema_count" yaml:"schema_count"`
	ObjectCount      int64   `json:"object_count" yaml:"object_count"`
	NumCPUs          int     `json:"num_cpus" yaml:"num_cpus"`
	NumCPUCores      int     `json:"num_cpu_cores" yaml:"num_cpu_cores"`
	PhysicalMemoryGB float64 `json:"physical_memory_gb" yaml:"physical_memory_gb"`
}

// MemorySample is one MEMORY row.
type MemorySample struct {
	SnapID         int64   `json:"snap_id" yaml:"snap_id"`
	InstanceNumber int     `json:"instance_number" yaml:"instance_number"`
	SGAGB          float64 `json:"sga_gb" yaml:"sga_gb"`
	PGAGB          float64 `json:"pga_gb" yaml:"pga_gb"`
	TotalGB        float64 `json:"total_gb" yaml:"total_gb"`
}

// DiskSample is one SIZE-ON-DISK row.
type DiskSample struct {
	SnapID int64   `json:"snap_id" yaml:"snap_id"`
	SizeGB float64 `json:"size_gb" yaml:"size_gb"`
}

// PerformanceSample is one MAIN-METRICS row.
type PerformanceSample struct {
	SnapID         int64    `json:"snap_id" yaml:"snap_id"`
	InstanceNumber int      `json:"instance_number" yaml:"instance_number"`
	EndTime        string   `json:"end_time" yaml:"end_time"`
	DurationMin    float64  `json:"duration_min" yaml:"duration_min"`
	OSCPUPct       *float64 `json:"os_cpu_pct,omitempty" yaml:"os_cpu_pct,omitempty"` // nil when the column is absent
	CPUPerSec      float64  `json:"cpu_per_s" yaml:"cpu_per_s"`
	HostCPUPerSec  float64  `json:"host_cpu_per_s" yaml:"host_cpu_per_s"`
	ReadIOPS       float64  `json:"read_iops" yaml:"read_iops"`
	WriteIOPS      float64  `json:"write_iops" yaml:"write_iops"`
	ReadMBPerSec   float64  `json:"read_mb_s" yaml:"read_mb_s"`
	WriteMBPerSec  float64  `json:"write_mb_s" yaml:"write_mb_s"`
	CommitsPerSec  float64  `json:"commits_s" yaml:"commits_s"`
}

// WaitEventSample is one TOP-N-TIMED-EVENTS row.
type WaitEventSample struct {
	SnapID       int64   `json:"snap_id" yaml:"snap_id"`
	WaitClass    string  `json:"wait_class" yaml:"wait_class"`
	EventName    string  `json:"event_name" yaml:"event_name"`
	PctDBTime    float64 `json:"pct_db_time" yaml:"pct_db_time"`
	TotalWaitSec float64 `json:"total_wait_s" yaml:"total_wait_s"`
}

// SysStatSample is one SYSSTAT row.
type SysStatSample struct {
	SnapID          int64   `json:"snap_id" yaml:"snap_id"`
	InstanceNumber  int     `json:"instance_number" yaml:"instance_number"`
	ExecsPerSec     float64 `json:"execs_s" yaml:"execs_s"`
	UserCallsPerSec float64 `json:"user_calls_s" yaml:"user_calls_s"`
	LogonsPerSec    float64 `json:"logons_s" yaml:"logons_s"`
	ParsesPerSec    float64 `json:"parses_s" yaml:"parses_s"`
	RedoMBPerSec    float64 `json:"redo_mb_s" yaml:"redo_mb_s"`
}

// FeatureUsageRecord is one logical FEATURES entry, continuation lines included.
type FeatureUsageRecord struct {
	Name           string   `json:"name" yaml:"name"`
	DetectedUsages int64    `json:"detected_usages" yaml:"detected_usages"`
	TotalSamples   int64    `json:"total_samples" yaml:"total_samples"`
	CurrentlyUsed  bool     `json:"currently_used" yaml:"currently_used"`
	AuxCount       *float64 `json:"aux_count,omitempty" yaml:"aux_count,omitempty"`
	LastSampleDate string   `json:"last_sample_date" yaml:"last_sample_date"`
	Info           string   `json:"info" yaml:"info"`
}

// SGATuningSample is one SGA-ADVICE what-if row.
type SGATuningSample struct {
	InstanceID       int     `json:"instance_id" yaml:"instance_id"`
	SGASizeMB        float64 `json:"sga_size_mb" yaml:"sga_size_mb"`
	SizeFactor       float64 `json:"size_factor" yaml:"size_factor"`
	EstDBTime        float64 `json:"est_db_time" yaml:"est_db_time"`
	EstDBTimeFactor  float64 `json:"est_db_time_factor" yaml:"est_db_time_factor"`
	EstPhysicalReads float64 `json:"est_physical_reads" yaml:"est_physical_reads"`
	SGATargetMB      float64 `json:"sga_target_mb" yaml:"sga_target_mb"`
}

// IOFunctionSample is one IOSTAT-FUNCTION row.
type IOFunctionSample struct {
	SnapID        int64   `json:"snap_id" yaml:"snap_id"`
	FunctionName  string  `json:"function_name" yaml:"function_name"`
	ReadMBPerSec  float64 `json:"read_mb_s" yaml:"read_mb_s"`
	WriteMBPerSec float64 `json:"write_mb_s" yaml:"write_mb_s"`
	TotalMBPerSec float64 `json:"total_mb_s" yaml:"total_mb_s"`
}

// CPUPercentileSample is one PERCENT-CPU row.
type CPUPercentileSample struct {
	Label             string   `json:"label" yaml:"label"`
	InstanceNumber    int      `json:"instance_number" yaml:"instance_number"` // 0 when not reported
	OSCPUPct          float64  `json:"os_cpu_pct" yaml:"os_cpu_pct"`
	OSCPUMaxPct       float64  `json:"os_cpu_max_pct" yaml:"os_cpu_max_pct"`
	CPUPerSec         float64  `json:"cpu_per_s" yaml:"cpu_per_s"`
	HostCPUPerSec     float64  `json:"host_cpu_per_s" yaml:"host_cpu_per_s"`
	AvgActiveSessions float64  `json:"aas" yaml:"aas"`
	DBTimePerSec      float64  `json:"db_time_per_s" yaml:"db_time_per_s"`
	OSLoad            *float64 `json:"os_load,omitempty" yaml:"os_load,omitempty"`
	NumCPUs           *float64 `json:"num_cpus,omitempty" yaml:"num_cpus,omitempty"`
	OSCPUStdDev       *float64 `json:"os_cpu_stddev,omitempty" yaml:"os_cpu_stddev,omitempty"`
	BeginInterval     string   `json:"begin_interval" yaml:"begin_interval"`
	EndInterval       string   `json:"end_interval" yaml:"end_interval"`
}

// IOPercentileSample is one PERCENT-IO row.
type IOPercentileSample struct {
	Label          string   `json:"label" yaml:"label"`
	InstanceNumber int      `json:"instance_number" yaml:"instance_number"`
	ReadIOPS       float64  `json:"read_iops" yaml:"read_iops"`
	WriteIOPS      float64  `json:"write_iops" yaml:"write_iops"`
	TotalIOPS      float64  `json:"total_iops" yaml:"total_iops"`
	ReadMBPerSec   float64  `json:"read_mb_s" yaml:"read_mb_s"`
	WriteMBPerSec  float64  `json:"write_mb_s" yaml:"write_mb_s"`
	TotalMBPerSec  float64  `json:"total_mb_s" yaml:"total_mb_s"`
	RedoMBPerSec   *float64 `json:"redo_mb_s,omitempty" yaml:"redo_mb_s,omitempty"`
	ReadLatencyMs  *float64 `json:"read_latency_ms,omitempty" yaml:"read_latency_ms,omitempty"`
	WriteLatencyMs *float64 `json:"write_latency_ms,omitempty" yaml:"write_latency_ms,omitempty"`
	BeginInterval  string   `json:"begin_interval" yaml:"begin_interval"`
	EndInterval    string   `json:"end_interval" yaml:"end_interval"`
}

// WorkloadSample is one WORKLOAD row attributing DB time to a module/program/event.
type WorkloadSample struct {
	Hour                string  `json:"hour" yaml:"hour"`
	Rank                int     `json:"rank" yaml:"rank"`
	Module              string  `json:"module" yaml:"module"`
	Program             string  `json:"program" yaml:"program"`
	Event               string  `json:"event" yaml:"event"`
	InstanceNumber      int     `json:"instance_number" yaml:"instance_number"`
	SessionType         string  `json:"session_type" yaml:"session_type"`
	Samples             int64   `json:"samples" yaml:"samples"`
	DBTimeSec           float64 `json:"db_time_s" yaml:"db_time_s"`
	PctDBTime           float64 `json:"pct_db_time" yaml:"pct_db_time"`
	WaitClass           string  `json:"wait_class" yaml:"wait_class"`
	PhysReadReqsDelta   int64   `json:"phys_read_reqs_delta" yaml:"phys_read_reqs_delta"`
	PhysWriteReqsDelta  int64   `json:"phys_write_reqs_delta" yaml:"phys_write_reqs_delta"`
	PhysReadBytesDelta  int64   `json:"phys_read_bytes_delta" yaml:"phys_read_bytes_delta"`
	PhysWriteBytesDelta int64   `json:"phys_write_bytes_delta" yaml:"phys_write_bytes_delta"`
}

// BufferCacheSample is one BUFFER-CACHE row.
type BufferCacheSample struct {
	SnapID         int64   `json:"snap_id" yaml:"snap_id"`
	InstanceNumber int     `json:"instance_number" yaml:"instance_number"`
	HitRatio       float64 `json:"hit_ratio" yaml:"hit_ratio"`
	CacheSizeMB    float64 `json:"cache_size_mb" yaml:"cache_size_mb"`
}

// AWRSections groups the collections that only the AWR-extended dialect carries.
type AWRSections struct {
	IOFunctions    []IOFunctionSample             `json:"io_functions" yaml:"io_functions"`
	CPUPercentiles map[string]CPUPercentileSample `json:"cpu_percentiles" yaml:"cpu_percentiles"`
	IOPercentiles  map[string]IOPercentileSample  `json:"io_percentiles" yaml:"io_percentiles"`
	Workload       []WorkloadSample               `json:"workload" yaml:"workload"`
	BufferCache    []BufferCacheSample            `json:"buffer_cache" yaml:"buffer_cache"`
}

// Empty reports whether none of the AWR collections has an entry.
func (a AWRSections) Empty() bool {
	return len(a.IOFunctions) == 0 && len(a.CPUPercentiles) == 0 && len(a.IOPercentiles) == 0 &&
		len(a.Workload) == 0 && len(a.BufferCache) == 0
}

// ReportModel is the structured view of one performance dump.
// It is built once by the parser and not mutated afterwards.
type ReportModel struct {
	Source      string               `json:"source" yaml:"source"`
	Metadata    ReportMetadata       `json:"metadata" yaml:"metadata"`
	OSInfo      map[string]Value     `json:"os_info" yaml:"os_info"`
	Memory      []MemorySample       `json:"memory" yaml:"memory"`
	Disk        []DiskSample         `json:"disk" yaml:"disk"`
	Performance []PerformanceSample  `json:"performance" yaml:"performance"`
	WaitEvents  []WaitEventSample    `json:"wait_events" yaml:"wait_events"`
	SysStats    []SysStatSample      `json:"sys_stats" yaml:"sys_stats"`
	Features    []FeatureUsageRecord `json:"features" yaml:"features"`
	SGAAdvice   []SGATuningSample    `json:"sga_advice" yaml:"sga_advice"`
	AWR         *AWRSections         `json:"awr,omitempty" yaml:"awr,omitempty"` // nil for baseline dumps
}

// AttachAWR stores the AWR collections, leaving AWR nil when they are all empty.
func (m *ReportModel) AttachAWR(a AWRSections) {
	if a.Empty() {
		m.AWR = nil
		return
	}
	m.AWR = &a
}

// IsAWR reports whether the dump carried any AWR-extended section content.
func (m *ReportModel) IsAWR() bool {
	return m.AWR != nil
}

// Dialect returns the dialect tag derived from content.
func (m *ReportModel) Dialect() Dialect {
	if m.IsAWR() {
		return AWRDialect
	}
	return StatspackDialect
}

// CurrentFeatures returns the features marked as currently used.
func (m *ReportModel) CurrentFeatures() []FeatureUsageRecord {
	var out []FeatureUsageRecord
	for _, f := range m.Features {
		if f.CurrentlyUsed {
			out = append(out, f)
		}
	}
	return out
}

// SectionCount is the number of decoded entries of one section.
type SectionCount struct {
	Section SectionName `json:"section" yaml:"section"`
	Rows    int         `json:"rows" yaml:"rows"`
}

// SectionCounts returns the decoded entry count of every known section in AllSections order.
func (m *ReportModel) SectionCounts() []SectionCount {
	awr := AWRSections{}
	if m.AWR != nil {
		awr = *m.AWR
	}
	rows := map[SectionName]int{
		SectionOSInfo:         len(m.OSInfo),
		SectionMemory:         len(m.Memory),
		SectionSizeOnDisk:     len(m.Disk),
		SectionMainMetrics:    len(m.Performance),
		SectionTopEvents:      len(m.WaitEvents),
		SectionSysStat:        len(m.SysStats),
		SectionFeatures:       len(m.Features),
		SectionSGAAdvice:      len(m.SGAAdvice),
		SectionIOStatFunction: len(awr.IOFunctions),
		SectionPercentCPU:     len(awr.CPUPercentiles),
		SectionPercentIO:      len(awr.IOPercentiles),
		SectionWorkload:       len(awr.Workload),
		SectionBufferCache:    len(awr.BufferCache),
	}
	out := make([]SectionCount, len(AllSections))
	for i, s := range AllSections {
		out[i] = SectionCount{Section: s, Rows: rows[s]}
	}
	return out
}
