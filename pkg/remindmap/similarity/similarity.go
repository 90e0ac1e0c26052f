// Package similarity scores the overlap between keyword sets.
package similarity

// Jaccard returns |A∩B| / |A∪B| over the de-duplicated keyword sets.
// Either side being empty yields 0: no signal means no relationship. The
// result is 1 only when both sets are identical and non-empty.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set1 := toSet(a)
	set2 := toSet(b)

	intersection := 0
	for term := range set1 {
		if _, ok := set2[term]; ok {
			intersection++
		}
	}

	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0
	}

	return clamp(float64(intersection) / float64(union))
}

func toSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return set
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
