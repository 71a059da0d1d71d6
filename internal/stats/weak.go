package stats

import (
	"sort"

	"github.com/Scar2201/RPCG/internal/model"
)

// SelectWeakBands selects the target bands with the worst precision
// from the aggregates, for focus-weak target generation.
func SelectWeakBands(aggs []model.BandAggregate, top int) map[int]struct{} {
	weakSet := map[int]struct{}{}
	if len(aggs) == 0 {
		return weakSet
	}
	candidates := make([]model.BandAggregate, 0, len(aggs))
	for _, agg := range aggs {
		if agg.Attempts > 0 {
			candidates = append(candidates, agg)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].AvgDeviation == candidates[j].AvgDeviation {
			return candidates[i].Band < candidates[j].Band
		}
		return candidates[i].AvgDeviation > candidates[j].AvgDeviation
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	for i := 0; i < top; i++ {
		weakSet[candidates[i].Band] = struct{}{}
	}
	return weakSet
}
