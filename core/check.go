package core

import (
	"errors"

	"github.com/huangsam/awrlens/internal/contract"
	"github.com/huangsam/awrlens/schema"
)

// ErrCheckFailed is returned when at least one target scores above its maximum.
var ErrCheckFailed = errors.New("complexity check failed")

// BuildCheckResult compares each analyzed target against its maximum score.
// Targets are listed in canonical order; a missing maximum uses contract.DefaultMaxScore.
func BuildCheckResult(result *schema.AnalysisResult, maxScores map[schema.TargetDatabase]float64) *schema.CheckResult {
	check := &schema.CheckResult{Source: result.Source, Passed: true, Targets: []schema.CheckTargetResult{}}
	for _, t := range schema.AllTargets {
		c, ok := result.Targets[t]
		if !ok {
			continue
		}
		limit, ok := maxScores[t]
		if !ok {
			limit = contract.DefaultMaxScore
		}
		passed := c.Score <= limit
		if !passed {
			check.Passed = false
		}
		check.Targets = append(check.Targets, schema.CheckTargetResult{
			Target:   t,
			Score:    c.Score,
			MaxScore: limit,
			Tier:     c.Tier,
			Passed:   passed,
		})
	}
	return check
}
