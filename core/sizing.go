package core

import (
	"math"

	"github.com/huangsam/awrlens/schema"
)

// Sizing constants.
const (
	cpuGrowthFactor    = 1.3
	memoryGrowthFactor = 1.2
	minVCPU            = 2
	minMemoryGB        = 16
	hoursPerMonth      = 730.0
	riskyScore         = 7.0
)

// DefaultInstanceTiers is the memory-optimized tier table in ascending order.
func DefaultInstanceTiers() []schema.InstanceTier {
	rate := func(v float64) *float64 { return &v }
	return []schema.InstanceTier{
		{Class: "db.r6i.large", VCPU: 2, MemoryGB: 16, HourlyUSD: rate(0.25)},
		{Class: "db.r6i.xlarge", VCPU: 4, MemoryGB: 32, HourlyUSD: rate(0.5)},
		{Class: "db.r6i.2xlarge", VCPU: 8, MemoryGB: 64, HourlyUSD: rate(1)},
		{Class: "db.r6i.4xlarge", VCPU: 16, MemoryGB: 128, HourlyUSD: rate(2)},
		{Class: "db.r6i.8xlarge", VCPU: 32, MemoryGB: 256, HourlyUSD: rate(4)},
		{Class: "db.r6i.12xlarge", VCPU: 48, MemoryGB: 384, HourlyUSD: rate(6)},
		{Class: "db.r6i.16xlarge", VCPU: 64, MemoryGB: 512, HourlyUSD: rate(8)},
		{Class: "db.r6i.24xlarge", VCPU: 96, MemoryGB: 768, HourlyUSD: rate(12)},
		{Class: "db.r6i.32xlarge", VCPU: 128, MemoryGB: 1024, HourlyUSD: rate(16)},
	}
}

// Requirement is the compute a workload needs after growth allowance.
type Requirement struct {
	VCPU            int
	MemoryGB        int
	CurrentCPUUsage float64 // vCPU equivalents at p99
	CurrentMemoryGB float64
}

// ComputeRequirement derives the vCPU and memory a target instance must provide.
func ComputeRequirement(usage schema.ResourceUsage) Requirement {
	cpuUsage := float64(usage.CPUCount) * usage.P99CPUUtilPct / 100
	vcpu := max(minVCPU, int(math.Round(cpuUsage*cpuGrowthFactor)))

	currentMem := usage.MeanMemoryGB
	if currentMem <= 0 {
		currentMem = usage.PhysicalMemoryGB
	}
	mem := max(minMemoryGB, int(math.Round(currentMem*memoryGrowthFactor)))

	return Requirement{
		VCPU:            vcpu,
		MemoryGB:        mem,
		CurrentCPUUsage: cpuUsage,
		CurrentMemoryGB: currentMem,
	}
}

// SelectTier returns the first tier meeting both requirements. Tiers must be ascending.
func SelectTier(req Requirement, tiers []schema.InstanceTier) (schema.InstanceTier, bool) {
	for _, t := range tiers {
		if t.VCPU >= req.VCPU && t.MemoryGB >= req.MemoryGB {
			return t, true
		}
	}
	return schema.InstanceTier{}, false
}

// RecommendInstance sizes an instance for a target. It returns nil when the score
// rules out the target or when no tier is large enough.
func RecommendInstance(target schema.TargetDatabase, score float64, usage schema.ResourceUsage,
	tiers []schema.InstanceTier,
) *schema.InstanceRecommendation {
	if score > riskyScore && !target.SameEngine() {
		return nil
	}
	req := ComputeRequirement(usage)
	tier, ok := SelectTier(req, tiers)
	if !ok {
		return nil
	}
	rec := &schema.InstanceRecommendation{
		InstanceClass:     tier.Class,
		VCPU:              tier.VCPU,
		MemoryGB:          tier.MemoryGB,
		RequiredVCPU:      req.VCPU,
		RequiredMemoryGB:  req.MemoryGB,
		CurrentCPUUsage:   req.CurrentCPUUsage,
		CurrentMemoryGB:   req.CurrentMemoryGB,
		CPUHeadroomPct:    headroom(float64(tier.VCPU), req.CurrentCPUUsage),
		MemoryHeadroomPct: headroom(float64(tier.MemoryGB), req.CurrentMemoryGB),
	}
	if tier.HourlyUSD != nil {
		cost := *tier.HourlyUSD * hoursPerMonth
		rec.EstimatedMonthlyCost = &cost
	}
	return rec
}

func headroom(capacity, used float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return (capacity - used) / capacity * 100
}
