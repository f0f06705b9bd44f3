package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/awrlens/core/parser"
	"github.com/huangsam/awrlens/schema"
)

// ErrUnknownTarget is returned when a requested target is not supported.
var ErrUnknownTarget = errors.New("unknown target database")

// Options tune an analysis.
type Options struct {
	Tiers []schema.InstanceTier // ascending; nil means DefaultInstanceTiers
}

// Analyzer scores one report against migration targets.
// Facts, usage and SGA advice are computed in NewAnalyzer and never change,
// so an Analyzer can be shared between goroutines.
type Analyzer struct {
	model *schema.ReportModel
	facts Facts
	usage schema.ResourceUsage
	sga   []schema.SGARecommendation
	tiers []schema.InstanceTier
}

// NewAnalyzer derives everything the scorer needs from model.
func NewAnalyzer(model *schema.ReportModel, opts Options) *Analyzer {
	tiers := opts.Tiers
	if len(tiers) == 0 {
		tiers = DefaultInstanceTiers()
	}
	return &Analyzer{
		model: model,
		facts: DeriveFacts(model),
		usage: ComputeResourceUsage(model),
		sga:   OptimalSGA(model.SGAAdvice),
		tiers: tiers,
	}
}

// Facts returns the derived edition, version, cluster and charset facts.
func (an *Analyzer) Facts() Facts { return an.facts }

// Usage returns the resource usage summary.
func (an *Analyzer) Usage() schema.ResourceUsage { return an.usage }

// SGA returns a copy of the SGA recommendations.
func (an *Analyzer) SGA() []schema.SGARecommendation {
	out := make([]schema.SGARecommendation, len(an.sga))
	copy(out, an.sga)
	return out
}

// Analyze scores the requested targets, or every target when none are given.
func (an *Analyzer) Analyze(targets []schema.TargetDatabase) (map[schema.TargetDatabase]schema.MigrationComplexity, error) {
	if len(targets) == 0 {
		targets = schema.AllTargets
	}
	for _, t := range targets {
		if _, ok := schema.ValidTargets[t]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, t)
		}
	}
	out := make(map[schema.TargetDatabase]schema.MigrationComplexity, len(targets))
	for _, t := range targets {
		out[t] = an.AnalyzeTarget(t)
	}
	return out, nil
}

// AnalyzeTarget scores a single supported target.
func (an *Analyzer) AnalyzeTarget(target schema.TargetDatabase) schema.MigrationComplexity {
	features := AssessFeatures(an.model, target)
	factors := scoreFactors(an.facts, an.usage, an.model.Metadata, features, target)
	score := computeScore(factors)
	c := schema.MigrationComplexity{
		Target:   target,
		Score:    score,
		Tier:     schema.TierForScore(score),
		Factors:  factors,
		Instance: RecommendInstance(target, score, an.usage, an.tiers),
	}
	an.buildAdvice(&c, features)
	return c
}

// Analyze is a shortcut for NewAnalyzer followed by Analyzer.Analyze.
func Analyze(model *schema.ReportModel, targets []schema.TargetDatabase, opts Options) (map[schema.TargetDatabase]schema.MigrationComplexity, error) {
	return NewAnalyzer(model, opts).Analyze(targets)
}

// AnalyzeReport bundles the per-target results of a parse with its usage, SGA advice
// and diagnostics.
func AnalyzeReport(res *parser.Result, targets []schema.TargetDatabase, opts Options) (*schema.AnalysisResult, error) {
	an := NewAnalyzer(res.Model, opts)
	results, err := an.Analyze(targets)
	if err != nil {
		return nil, err
	}
	return &schema.AnalysisResult{
		Source:      res.Model.Source,
		Dialect:     res.Model.Dialect(),
		Edition:     an.facts.Edition,
		Usage:       an.usage,
		Targets:     results,
		SGA:         an.SGA(),
		Diagnostics: res.Diagnostics,
	}, nil
}
