package scoring

import "github.com/SAP-F-2025/trait-assessment-service/internal/models"

// Assemble combines the pipeline outputs into a result that shares no memory with its inputs.
// Single-score instruments report the scoring dimensions' combined share of the
// denominator as the overall score; multi-trait instruments report the dominant percentage.
func Assemble(
	instrument *models.Instrument,
	t *Tally,
	scores []models.DimensionScore,
	dominant string,
	narrative models.Narrative,
	validity *models.RankedValidity,
) models.EvaluationResult {
	result := models.EvaluationResult{
		InstrumentID:        instrument.ID,
		InstrumentTitle:     instrument.Title,
		Family:              instrument.Family,
		DominantDimension:   dominant,
		DominantDisplayName: narrative.DisplayName,
		Scores:              append([]models.DimensionScore(nil), scores...),
		Description:         narrative.Description,
		Strengths:           append([]string{}, narrative.Strengths...),
		Recommendations:     append([]string{}, narrative.Recommendations...),
		AnsweredCount:       t.Answered,
		QuestionCount:       len(instrument.Questions),
	}

	if instrument.Family == models.FamilySingleScore {
		result.OverallScore = Percentage(t.ScoringTotal(), Denominator(instrument, t.Answered))
	} else {
		for _, s := range scores {
			if s.Dimension == dominant {
				result.OverallScore = s.Percentage
				break
			}
		}
	}

	if validity != nil {
		v := *validity
		v.Incomplete = append([]string(nil), validity.Incomplete...)
		result.Validity = &v
	}
	return result
}
