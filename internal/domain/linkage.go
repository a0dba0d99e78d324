package domain

import "sort"

// LocateNeighbors computes the previous and next step summaries for the step
// with the given id within its trip's live step set.
//
// The total order is FromDate ascending; the sort is stable, so same-dated
// steps keep the order they were retrieved in (the repo lists steps by
// from_date, id). The ordering is recomputed from allSteps on every call and
// never stored, so there is no second source of truth to drift.
//
// Prev is nil when the step is first, next is nil when it is last; both are
// nil when stepID does not occur in allSteps.
func LocateNeighbors(allSteps []Step, stepID string) (prev, next *StepSummary) {
	ordered := make([]Step, len(allSteps))
	copy(ordered, allSteps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FromDate.Before(ordered[j].FromDate)
	})

	index := -1
	for i := range ordered {
		if ordered[i].ID == stepID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, nil
	}

	if index > 0 {
		s := ordered[index-1].Summary()
		prev = &s
	}
	if index < len(ordered)-1 {
		s := ordered[index+1].Summary()
		next = &s
	}
	return prev, next
}
