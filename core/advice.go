package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huangsam/awrlens/schema"
)

const (
	lowHitRatioPct  = 90.0
	smartScanMarker = "smart scan"
)

// advice collects the text lists of one MigrationComplexity.
type advice struct {
	recommendations []string
	warnings        []string
	nextSteps       []string
}

func (a *advice) recommend(format string, args ...any) {
	a.recommendations = append(a.recommendations, fmt.Sprintf(format, args...))
}

func (a *advice) warn(format string, args ...any) {
	a.warnings = append(a.warnings, fmt.Sprintf(format, args...))
}

func (a *advice) next(format string, args ...any) {
	a.nextSteps = append(a.nextSteps, fmt.Sprintf(format, args...))
}

// buildAdvice fills the recommendations, warnings and next steps of one target.
func (an *Analyzer) buildAdvice(c *schema.MigrationComplexity, features schema.FeatureAssessment) {
	a := &advice{recommendations: []string{}, warnings: []string{}, nextSteps: []string{}}
	target := c.Target

	for _, f := range features.Incompatible {
		a.recommend("%s: %s", f.Feature, f.Alternative)
	}
	if an.facts.ConversionRequired {
		if target.SameEngine() {
			a.recommend("Consider converting character set %s to %s during the move", an.facts.Charset, canonicalCharset)
		} else {
			a.recommend("Plan data conversion from character set %s to UTF-8", an.facts.Charset)
		}
	}
	if target.SameEngine() {
		if gap := VersionGap(an.facts.MajorVersion); gap > 0 {
			a.recommend("Upgrade from release %d to %d as part of the migration", an.facts.MajorVersion, latestSupportedRelease)
		}
		for _, s := range an.sga {
			switch s.Action {
			case schema.SGAShrink:
				a.recommend("Instance %d: shrink SGA from %.0f MB to %.0f MB (size factor %.2f)",
					s.InstanceID, s.CurrentSGAMB, s.RecommendedSGAMB, s.SizeFactor)
			case schema.SGAGrow:
				a.recommend("Instance %d: grow SGA from %.0f MB to %.0f MB (size factor %.2f)",
					s.InstanceID, s.CurrentSGAMB, s.RecommendedSGAMB, s.SizeFactor)
			case schema.SGAKeep:
			}
		}
	}

	if an.usage.MeanCPUUtilPct > cpuPressurePct {
		a.warn("Mean CPU utilization %.1f%% exceeds %.0f%%", an.usage.MeanCPUUtilPct, cpuPressurePct)
	}
	if an.usage.IOWaitPct > ioWaitPressurePct {
		a.warn("I/O wait is %.1f%% of DB time, above %.0f%%", an.usage.IOWaitPct, ioWaitPressurePct)
	}
	if an.facts.RAC {
		a.warn("Source runs %d RAC instances; the target runs a single writer", an.model.Metadata.Instances)
	}
	an.awrWarnings(a)

	switch {
	case c.Score > riskyScore && !target.SameEngine():
		a.warn("Score %.1f is above %.0f; evaluate %s first", c.Score, riskyScore, schema.RDSOracle)
		a.next("Evaluate the lower-risk %s path before committing to %s", schema.RDSOracle, target)
	case c.Instance == nil:
		req := ComputeRequirement(an.usage)
		a.warn("No instance tier provides %d vCPU and %d GB memory", req.VCPU, req.MemoryGB)
		a.next("Review the workload for consolidation or sharding before sizing")
	default:
		a.next("Provision %s and run a representative load test", c.Instance.InstanceClass)
	}
	if target.SameEngine() {
		a.next("Map init parameters and options to an RDS parameter group and option group")
	} else {
		a.next("Run an AWS Schema Conversion Tool assessment for %s", target)
		a.next("Plan a proof-of-concept data load with AWS DMS")
	}
	if module, pct, ok := an.topWorkloadModule(); ok {
		a.next("Profile module %s, which accounts for %.1f%% of sampled DB time", module, pct)
	}

	c.Recommendations = a.recommendations
	c.Warnings = a.warnings
	c.NextSteps = a.nextSteps
}

// awrWarnings adds warnings that only AWR-extended dumps can support.
func (an *Analyzer) awrWarnings(a *advice) {
	awr := an.model.AWR
	if awr == nil {
		return
	}
	for _, f := range awr.IOFunctions {
		if strings.Contains(strings.ToLower(f.FunctionName), smartScanMarker) && f.TotalMBPerSec > 0 {
			a.warn("Exadata Smart Scan I/O detected; expect higher I/O load without storage offload")
			break
		}
	}
	low := -1.0
	for _, b := range awr.BufferCache {
		if b.HitRatio < lowHitRatioPct && (low < 0 || b.HitRatio < low) {
			low = b.HitRatio
		}
	}
	if low >= 0 {
		a.warn("Buffer cache hit ratio drops to %.1f%%, below %.0f%%", low, lowHitRatioPct)
	}
}

// topWorkloadModule returns the module with the largest summed share of DB time.
func (an *Analyzer) topWorkloadModule() (string, float64, bool) {
	if an.model.AWR == nil || len(an.model.AWR.Workload) == 0 {
		return "", 0, false
	}
	shares := make(map[string]float64)
	for _, w := range an.model.AWR.Workload {
		if name := strings.TrimSpace(w.Module); name != "" {
			shares[name] += w.PctDBTime
		}
	}
	if len(shares) == 0 {
		return "", 0, false
	}
	names := make([]string, 0, len(shares))
	for n := range shares {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if shares[names[i]] != shares[names[j]] {
			return shares[names[i]] > shares[names[j]]
		}
		return names[i] < names[j]
	})
	return names[0], shares[names[0]], true
}
