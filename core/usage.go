package core

import (
	"strings"

	"github.com/huangsam/awrlens/core/algo"
	"github.com/huangsam/awrlens/schema"
)

// ioWaitClasses are the wait classes counted as I/O wait.
var ioWaitClasses = []string{"User I/O", "System I/O"}

// ComputeResourceUsage summarizes the time-indexed samples of a report.
// Empty collections produce zero statistics.
func ComputeResourceUsage(model *schema.ReportModel) schema.ResourceUsage {
	meta := model.Metadata
	cpuCount := meta.NumCPUs
	if cpuCount <= 0 {
		cpuCount = meta.NumCPUCores
	}

	n := len(model.Performance)
	cpuPerSec := make([]float64, 0, n)
	util := make([]float64, 0, n)
	readIOPS := make([]float64, 0, n)
	writeIOPS := make([]float64, 0, n)
	totalIOPS := make([]float64, 0, n)
	readMB := make([]float64, 0, n)
	writeMB := make([]float64, 0, n)
	for _, p := range model.Performance {
		cpuPerSec = append(cpuPerSec, p.CPUPerSec)
		if u, ok := cpuUtilization(p, cpuCount); ok {
			util = append(util, u)
		}
		readIOPS = append(readIOPS, p.ReadIOPS)
		writeIOPS = append(writeIOPS, p.WriteIOPS)
		totalIOPS = append(totalIOPS, p.ReadIOPS+p.WriteIOPS)
		readMB = append(readMB, p.ReadMBPerSec)
		writeMB = append(writeMB, p.WriteMBPerSec)
	}

	memory := make([]float64, 0, len(model.Memory))
	for _, m := range model.Memory {
		memory = append(memory, m.TotalGB)
	}
	disk := make([]float64, 0, len(model.Disk))
	for _, d := range model.Disk {
		disk = append(disk, d.SizeGB)
	}

	return schema.ResourceUsage{
		MeanCPUPerSec:    algo.Mean(cpuPerSec),
		P99CPUPerSec:     algo.P99(cpuPerSec),
		MeanCPUUtilPct:   algo.Mean(util),
		P99CPUUtilPct:    algo.P99(util),
		MeanMemoryGB:     algo.Mean(memory),
		MaxMemoryGB:      algo.Max(memory),
		MaxDiskGB:        algo.Max(disk),
		MeanReadIOPS:     algo.Mean(readIOPS),
		MeanWriteIOPS:    algo.Mean(writeIOPS),
		MeanTotalIOPS:    algo.Mean(totalIOPS),
		P99TotalIOPS:     algo.P99(totalIOPS),
		MeanReadMBPerS:   algo.Mean(readMB),
		MeanWriteMBPerS:  algo.Mean(writeMB),
		IOWaitPct:        ioWaitShare(model.WaitEvents),
		CPUCount:         cpuCount,
		PhysicalMemoryGB: meta.PhysicalMemoryGB,
	}
}

// cpuUtilization prefers the OS CPU column and otherwise derives a percentage
// from CPU seconds per second over the CPU count.
func cpuUtilization(p schema.PerformanceSample, cpuCount int) (float64, bool) {
	if p.OSCPUPct != nil {
		return *p.OSCPUPct, true
	}
	if cpuCount <= 0 {
		return 0, false
	}
	return p.CPUPerSec / float64(cpuCount) * 100, true
}

// ioWaitShare is the mean, over snapshots, of the DB time share spent in I/O wait classes.
func ioWaitShare(events []schema.WaitEventSample) float64 {
	perSnap := make(map[int64]float64)
	var order []int64
	for _, e := range events {
		if _, seen := perSnap[e.SnapID]; !seen {
			perSnap[e.SnapID] = 0
			order = append(order, e.SnapID)
		}
		if isIOWaitClass(e.WaitClass) {
			perSnap[e.SnapID] += e.PctDBTime
		}
	}
	shares := make([]float64, 0, len(order))
	for _, id := range order {
		shares = append(shares, perSnap[id])
	}
	return algo.Mean(shares)
}

func isIOWaitClass(class string) bool {
	for _, c := range ioWaitClasses {
		if strings.EqualFold(strings.TrimSpace(class), c) {
			return true
		}
	}
	return false
}
