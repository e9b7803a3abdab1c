package scoring

import "github.com/SAP-F-2025/trait-assessment-service/internal/models"

// Tally holds raw per-dimension totals in declaration order.
type Tally struct {
	Dimensions []string
	Raw        map[string]int
	Answered   int
	// NonScoring marks dimensions that are tallied but never dominant.
	NonScoring map[string]bool
}

func newTally(instrument *models.Instrument) *Tally {
	t := &Tally{
		Dimensions: append([]string(nil), instrument.Dimensions...),
		Raw:        make(map[string]int, len(instrument.Dimensions)),
	}
	for _, d := range instrument.Dimensions {
		t.Raw[d] = 0
	}
	if len(instrument.NonScoring) > 0 {
		t.NonScoring = make(map[string]bool, len(instrument.NonScoring))
		for _, d := range instrument.NonScoring {
			t.NonScoring[d] = true
		}
	}
	return t
}

// Total sums the raw values across dimensions.
func (t *Tally) Total() int {
	total := 0
	for _, d := range t.Dimensions {
		total += t.Raw[d]
	}
	return total
}

// ScoringTotal sums the raw values of the scoring dimensions only.
func (t *Tally) ScoringTotal() int {
	total := 0
	for _, d := range t.Dimensions {
		if !t.NonScoring[d] {
			total += t.Raw[d]
		}
	}
	return total
}
