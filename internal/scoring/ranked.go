package scoring

import "github.com/SAP-F-2025/trait-assessment-service/internal/models"

// EvaluateRanked adds each slot's rank to its bound dimension for every question ranked
// as a full permutation of {1,2,3}. Other questions contribute nothing and make the set
// invalid; values are never coerced.
func EvaluateRanked(instrument *models.Instrument, responses models.ResponseSet) (*Tally, models.RankedValidity) {
	t := newTally(instrument)
	var incomplete []string

	for _, q := range instrument.Questions {
		sel, ok := responses[q.ID]
		if !ok || !sel.IsCompleteRanking() {
			incomplete = append(incomplete, q.ID)
			continue
		}
		for _, slot := range models.RankedSlots {
			t.Raw[models.SlotDimensions[slot]] += sel.Ranks[slot]
		}
		t.Answered++
	}

	total := t.Total()
	expected := len(instrument.Questions) * models.RankPointsPerQuestion
	return t, models.RankedValidity{
		Valid:      len(incomplete) == 0 && total == expected,
		Total:      total,
		Expected:   expected,
		Difference: total - expected,
		Incomplete: incomplete,
	}
}
