package models

type DimensionScore struct {
	Dimension   string `json:"dimension"`
	DisplayName string `json:"display_name"`
	Raw         int    `json:"raw"`
	Percentage  int    `json:"percentage"`
	Band        Band   `json:"band"`
	BandLabel   string `json:"band_label"`
}

// RankedValidity reports whether a ranked response set sums to the expected total.
type RankedValidity struct {
	Valid      bool     `json:"valid"`
	Total      int      `json:"total"`
	Expected   int      `json:"expected"`
	Difference int      `json:"difference"`
	Incomplete []string `json:"incomplete,omitempty"`
}

// EvaluationResult is the scored outcome of one response set. Values returned by the
// engine own their slices; callers may keep them without affecting later evaluations.
type EvaluationResult struct {
	InstrumentID        string           `json:"instrument_id"`
	InstrumentTitle     string           `json:"instrument_title"`
	Family              InstrumentFamily `json:"family"`
	OverallScore        int              `json:"overall_score"`
	DominantDimension   string           `json:"dominant_dimension"`
	DominantDisplayName string           `json:"dominant_display_name"`
	Scores              []DimensionScore `json:"scores"`
	Description         string           `json:"description"`
	Strengths           []string         `json:"strengths"`
	Recommendations     []string         `json:"recommendations"`
	AnsweredCount       int              `json:"answered_count"`
	QuestionCount       int              `json:"question_count"`
	Validity            *RankedValidity  `json:"validity,omitempty"`
}

// Score returns the score of the given dimension.
func (r *EvaluationResult) Score(dimension string) (DimensionScore, bool) {
	for _, s := range r.Scores {
		if s.Dimension == dimension {
			return s, true
		}
	}
	return DimensionScore{}, false
}

func (r EvaluationResult) Clone() EvaluationResult {
	r.Scores = append([]DimensionScore(nil), r.Scores...)
	r.Strengths = append([]string(nil), r.Strengths...)
	r.Recommendations = append([]string(nil), r.Recommendations...)
	if r.Validity != nil {
		v := *r.Validity
		v.Incomplete = append([]string(nil), v.Incomplete...)
		r.Validity = &v
	}
	return r
}
