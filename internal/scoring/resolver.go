package scoring

// Dominant returns the scoring dimension with the highest raw value. The scan is left to
// right and only a strictly greater value replaces the current best, so ties go to the
// earliest declared dimension. Non-scoring dimensions are skipped. A tally without scoring
// dimensions yields "".
func Dominant(t *Tally) string {
	best := ""
	for _, d := range t.Dimensions {
		if t.NonScoring[d] {
			continue
		}
		if best == "" || t.Raw[d] > t.Raw[best] {
			best = d
		}
	}
	return best
}
