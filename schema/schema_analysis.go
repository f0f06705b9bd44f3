package schema

// ResourceUsage summarizes the time-indexed samples of a report.
// Every statistic is 0 when its backing collection is empty.
type ResourceUsage struct {
	MeanCPUPerSec    float64 `json:"mean_cpu_per_s" yaml:"mean_cpu_per_s"`
	P99CPUPerSec     float64 `json:"p99_cpu_per_s" yaml:"p99_cpu_per_s"`
	MeanCPUUtilPct   float64 `json:"mean_cpu_util_pct" yaml:"mean_cpu_util_pct"`
	P99CPUUtilPct    float64 `json:"p99_cpu_util_pct" yaml:"p99_cpu_util_pct"`
	MeanMemoryGB     float64 `json:"mean_memory_gb" yaml:"mean_memory_gb"`
	MaxMemoryGB      float64 `json:"max_memory_gb" yaml:"max_memory_gb"`
	MaxDiskGB        float64 `json:"max_disk_gb" yaml:"max_disk_gb"`
	MeanReadIOPS     float64 `json:"mean_read_iops" yaml:"mean_read_iops"`
	MeanWriteIOPS    float64 `json:"mean_write_iops" yaml:"mean_write_iops"`
	MeanTotalIOPS    float64 `json:"mean_total_iops" yaml:"mean_total_iops"`
	P99TotalIOPS     float64 `json:"p99_total_iops" yaml:"p99_total_iops"`
	MeanReadMBPerS   float64 `json:"mean_read_mb_s" yaml:"mean_read_mb_s"`
	MeanWriteMBPerS  float64 `json:"mean_write_mb_s" yaml:"mean_write_mb_s"`
	IOWaitPct        float64 `json:"io_wait_pct" yaml:"io_wait_pct"`
	CPUCount         int     `json:"cpu_count" yaml:"cpu_count"`
	PhysicalMemoryGB float64 `json:"physical_memory_gb" yaml:"physical_memory_gb"`
}

// InstanceRecommendation is a concrete compute tier for a target.
type InstanceRecommendation struct {
	InstanceClass        string   `json:"instance_class" yaml:"instance_class"`
	VCPU                 int      `json:"vcpu" yaml:"vcpu"`
	MemoryGB             int      `json:"memory_gb" yaml:"memory_gb"`
	RequiredVCPU         int      `json:"required_vcpu" yaml:"required_vcpu"`
	RequiredMemoryGB     int      `json:"required_memory_gb" yaml:"required_memory_gb"`
	CurrentCPUUsage      float64  `json:"current_cpu_usage" yaml:"current_cpu_usage"` // vCPU equivalents at p99
	CurrentMemoryGB      float64  `json:"current_memory_gb" yaml:"current_memory_gb"`
	CPUHeadroomPct       float64  `json:"cpu_headroom_pct" yaml:"cpu_headroom_pct"`
	MemoryHeadroomPct    float64  `json:"memory_headroom_pct" yaml:"memory_headroom_pct"`
	EstimatedMonthlyCost *float64 `json:"estimated_monthly_cost,omitempty" yaml:"estimated_monthly_cost,omitempty"`
}

// MigrationComplexity is the per-target result of an analysis.
type MigrationComplexity struct {
	Target          TargetDatabase          `json:"target" yaml:"target"`
	Score           float64                 `json:"score" yaml:"score"`
	Tier            DifficultyTier          `json:"tier" yaml:"tier"`
	Factors         map[FactorKey]float64   `json:"factors" yaml:"factors"`
	Recommendations []string                `json:"recommendations" yaml:"recommendations"`
	Warnings        []string                `json:"warnings" yaml:"warnings"`
	NextSteps       []string                `json:"next_steps" yaml:"next_steps"`
	Instance        *InstanceRecommendation `json:"instance,omitempty" yaml:"instance,omitempty"`
}

// FactorSum returns the sum of all factor weights, which is never below Score.
func (c MigrationComplexity) FactorSum() float64 {
	var sum float64
	for _, v := range c.Factors {
		sum += v
	}
	return sum
}

// SGARecommendation is the outcome of the SGA what-if search for one instance.
type SGARecommendation struct {
	InstanceID       int       `json:"instance_id" yaml:"instance_id"`
	CurrentSGAMB     float64   `json:"current_sga_mb" yaml:"current_sga_mb"`
	RecommendedSGAMB float64   `json:"recommended_sga_mb" yaml:"recommended_sga_mb"`
	SizeFactor       float64   `json:"size_factor" yaml:"size_factor"`
	EstPhysicalReads float64   `json:"est_physical_reads" yaml:"est_physical_reads"`
	Action           SGAAction `json:"action" yaml:"action"`
}

// IncompatibleFeature names a used feature that a target cannot carry over as-is.
type IncompatibleFeature struct {
	Feature     string  `json:"feature" yaml:"feature"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Alternative string  `json:"alternative" yaml:"alternative"`
}

// FeatureAssessment is the feature-level view of one target.
type FeatureAssessment struct {
	Target       TargetDatabase        `json:"target" yaml:"target"`
	TotalWeight  float64               `json:"total_weight" yaml:"total_weight"` // capped at 10
	Incompatible []IncompatibleFeature `json:"incompatible" yaml:"incompatible"`
}

// AnalysisResult bundles everything one analyze call produces.
type AnalysisResult struct {
	Source      string                                 `json:"source" yaml:"source"`
	Dialect     Dialect                                `json:"dialect" yaml:"dialect"`
	Edition     Edition                                `json:"edition" yaml:"edition"`
	Usage       ResourceUsage                          `json:"usage" yaml:"usage"`
	Targets     map[TargetDatabase]MigrationComplexity `json:"targets" yaml:"targets"`
	SGA         []SGARecommendation                    `json:"sga" yaml:"sga"`
	Diagnostics Diagnostics                            `json:"diagnostics" yaml:"diagnostics"`
}
