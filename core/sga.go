package core

import (
	"math"
	"slices"

	"github.com/huangsam/awrlens/schema"
)

// OptimalSGA searches the SGA what-if rows of every instance for the size that keeps
// estimated physical reads flat. Results are ordered by instance id.
//
// A smaller size with the same reads as the current size means the SGA can shrink.
// Otherwise the most frequent reads value above the current size marks a plateau the
// SGA can grow into; among equally frequent plateaus the smallest factor wins.
func OptimalSGA(samples []schema.SGATuningSample) []schema.SGARecommendation {
	byInstance := make(map[int][]schema.SGATuningSample)
	var ids []int
	for _, s := range samples {
		if _, ok := byInstance[s.InstanceID]; !ok {
			ids = append(ids, s.InstanceID)
		}
		byInstance[s.InstanceID] = append(byInstance[s.InstanceID], s)
	}
	slices.Sort(ids)

	out := make([]schema.SGARecommendation, 0, len(ids))
	for _, id := range ids {
		out = append(out, optimalForInstance(id, byInstance[id]))
	}
	return out
}

func optimalForInstance(id int, rows []schema.SGATuningSample) schema.SGARecommendation {
	anchor := rows[0]
	for _, r := range rows[1:] {
		if math.Abs(r.SizeFactor-1) < math.Abs(anchor.SizeFactor-1) {
			anchor = r
		}
	}
	rec := func(pick schema.SGATuningSample, action schema.SGAAction) schema.SGARecommendation {
		return schema.SGARecommendation{
			InstanceID:       id,
			CurrentSGAMB:     anchor.SGASizeMB,
			RecommendedSGAMB: pick.SGASizeMB,
			SizeFactor:       pick.SizeFactor,
			EstPhysicalReads: pick.EstPhysicalReads,
			Action:           action,
		}
	}

	var shrink *schema.SGATuningSample
	for i, r := range rows {
		if r.SizeFactor < anchor.SizeFactor && r.EstPhysicalReads == anchor.EstPhysicalReads {
			if shrink == nil || r.SizeFactor < shrink.SizeFactor {
				shrink = &rows[i]
			}
		}
	}
	if shrink != nil {
		return rec(*shrink, schema.SGAShrink)
	}

	freq := make(map[float64]int)
	for _, r := range rows {
		if r.SizeFactor > anchor.SizeFactor {
			freq[r.EstPhysicalReads]++
		}
	}
	top := 0
	for _, n := range freq {
		top = max(top, n)
	}
	if top < 2 {
		return rec(anchor, schema.SGAKeep)
	}
	var grow *schema.SGATuningSample
	for i, r := range rows {
		if r.SizeFactor > anchor.SizeFactor && freq[r.EstPhysicalReads] == top {
			if grow == nil || r.SizeFactor < grow.SizeFactor {
				grow = &rows[i]
			}
		}
	}
	return rec(*grow, schema.SGAGrow)
}
