package scoring

import "github.com/SAP-F-2025/trait-assessment-service/internal/models"

// EvaluateDichotomous counts, per dimension, the answered questions whose chosen option
// is tagged with it. Unanswered questions and unknown options contribute nothing.
func EvaluateDichotomous(instrument *models.Instrument, responses models.ResponseSet) *Tally {
	t := newTally(instrument)
	for i := range instrument.Questions {
		q := &instrument.Questions[i]
		sel, ok := responses[q.ID]
		if !ok {
			continue
		}
		opt, ok := q.Option(sel.OptionID)
		if !ok {
			continue
		}
		if _, declared := t.Raw[opt.Dimension]; !declared {
			continue
		}
		t.Raw[opt.Dimension]++
		t.Answered++
	}
	return t
}
