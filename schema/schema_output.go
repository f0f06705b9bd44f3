package schema

import "sort"

// RankedComplexity adds presentation data to a MigrationComplexity.
type RankedComplexity struct {
	Rank                int `json:"rank" yaml:"rank"`
	MigrationComplexity `yaml:",inline"`
}

// TierForScore returns the difficulty tier of a clamped score.
func TierForScore(score float64) DifficultyTier {
	switch {
	case score <= 2:
		return TierMinimal
	case score <= 4:
		return TierLow
	case score <= 6:
		return TierModerate
	case score <= 8:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

// RankTargets orders per-target results from easiest to hardest.
// Ties keep the canonical target order.
func RankTargets(results map[TargetDatabase]MigrationComplexity) []RankedComplexity {
	order := make(map[TargetDatabase]int, len(AllTargets))
	for i, t := range AllTargets {
		order[t] = i
	}
	list := make([]MigrationComplexity, 0, len(results))
	for _, r := range results {
		list = append(list, r)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score < list[j].Score
		}
		return order[list[i].Target] < order[list[j].Target]
	})
	output := make([]RankedComplexity, len(list))
	for i, r := range list {
		output[i] = RankedComplexity{Rank: i + 1, MigrationComplexity: r}
	}
	return output
}
