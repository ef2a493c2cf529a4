package textutil

// Jaccard computes the word-set overlap ratio between two texts:
// |intersection| / |union| of their token sets. Returns 0 when either
// text has no tokens. The result is symmetric and 1.0 for identical
// non-empty token sets.
func Jaccard(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
