package schema

// CheckResult holds the results of a complexity gate.
type CheckResult struct {
	Source  string              `json:"source" yaml:"source"`
	Passed  bool                `json:"passed" yaml:"passed"`
	Targets []CheckTargetResult `json:"targets" yaml:"targets"`
}

// CheckTargetResult is the gate outcome for one target.
type CheckTargetResult struct {
	Target   TargetDatabase `json:"target" yaml:"target"`
	Score    float64        `json:"score" yaml:"score"`
	MaxScore float64        `json:"max_score" yaml:"max_score"`
	Tier     DifficultyTier `json:"tier" yaml:"tier"`
	Passed   bool           `json:"passed" yaml:"passed"`
}

// Failed returns the targets whose score exceeds their maximum.
func (r CheckResult) Failed() []CheckTargetResult {
	var out []CheckTargetResult
	for _, t := range r.Targets {
		if !t.Passed {
			out = append(out, t)
		}
	}
	return out
}
