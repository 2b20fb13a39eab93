package recommendations

import "sort"

// Prioritize orders recommendations for display: priority tier first, then
// category tier, then fit score descending. Concrete, scored options surface
// above general advice. The sort is stable and has no I/O.
func Prioritize(items []GeneratedRecommendation) []GeneratedRecommendation {
	out := append([]GeneratedRecommendation(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
			return pa < pb
		}
		if ca, cb := categoryRank(a.Category), categoryRank(b.Category); ca != cb {
			return ca < cb
		}
		return fitScore(a) > fitScore(b)
	})
	return out
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

func categoryRank(category Category) int {
	switch category {
	case CategorySchool:
		return 0
	case CategoryProgram:
		return 1
	case CategoryActivity:
		return 2
	case CategoryGeneral:
		return 3
	default:
		return 4
	}
}

func fitScore(rec GeneratedRecommendation) float64 {
	if rec.FitScore == nil {
		return 0
	}
	return *rec.FitScore
}
