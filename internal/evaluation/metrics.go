package evaluation

// RecallAtK computes Recall@K: the fraction of relevant conditions found in
// the top-K ranked conditions. Returns 0.0 if relevant is empty.
func RecallAtK(relevant, ranked []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	want := toSet(relevant)
	found := 0
	for _, name := range topK(ranked, k) {
		if _, ok := want[name]; ok {
			found++
		}
	}

	return float64(found) / float64(len(relevant))
}

// MRRAtK computes the reciprocal rank of the first relevant condition in the
// top-K ranked conditions. Returns 0.0 if none is found.
func MRRAtK(relevant, ranked []string, k int) float64 {
	if len(relevant) == 0 || len(ranked) == 0 {
		return 0.0
	}

	want := toSet(relevant)
	for i, name := range topK(ranked, k) {
		if _, ok := want[name]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}

// HitAt1 reports whether the top-ranked condition is the expected one.
func HitAt1(expected string, ranked []string) bool {
	return len(ranked) > 0 && ranked[0] == expected
}

func topK(ranked []string, k int) []string {
	if k >= 0 && k < len(ranked) {
		return ranked[:k]
	}
	return ranked
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
