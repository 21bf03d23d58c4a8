package cpm

import "sort"

// computeWaves groups activities by their earliest start time. Activities
// in the same wave have no precedence relation between them and could in
// principle run in parallel. Start times are compared through the same
// epsilon as every other time comparison, so values that differ only by
// accumulated rounding land in one wave.
func computeWaves(res *Result) []Wave {
	ids := make([]int, len(res.Order))
	copy(ids, res.Order)
	sort.Slice(ids, func(i, j int) bool {
		a, b := res.Sched[ids[i]].ES, res.Sched[ids[j]].ES
		if !approxEqual(a, b) {
			return a < b
		}
		return ids[i] < ids[j]
	})

	var waves []Wave
	for _, id := range ids {
		sched := res.Sched[id]
		if len(waves) == 0 || !approxEqual(waves[len(waves)-1].Start, sched.ES) {
			waves = append(waves, Wave{Index: len(waves), Start: sched.ES})
		}
		w := &waves[len(waves)-1]
		w.ActivityIDs = append(w.ActivityIDs, id)
		if sched.Critical() {
			w.HasCritical = true
		}
	}

	// Critical activities first within a wave.
	for i := range waves {
		members := waves[i].ActivityIDs
		sort.SliceStable(members, func(a, b int) bool {
			aCrit := res.Sched[members[a]].Critical()
			bCrit := res.Sched[members[b]].Critical()
			return aCrit && !bCrit
		})
	}
	return waves
}
