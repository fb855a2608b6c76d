package trail

// weightedIndex picks one index proportionally to weights with a single
// RNG draw: cumulative sum against rng.Next() * total. Non-positive
// weights count as zero; an empty or all-zero set returns -1.
func weightedIndex(rng *RNG, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	draw := rng.Next() * float64(total)
	cum := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += float64(w)
		if draw < cum {
			return i
		}
	}
	return len(weights) - 1
}
