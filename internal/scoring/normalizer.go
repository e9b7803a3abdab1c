package scoring

import (
	"math"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
)

// Denominator returns the raw total that maps to 100% under the instrument's policy.
// A zero result means no percentage can be computed and every dimension reports 0.
func Denominator(instrument *models.Instrument, answered int) int {
	switch instrument.DenominatorPolicy {
	case models.DenominatorFixedQuestionCount:
		return len(instrument.Questions) * instrument.PointsPerQuestion()
	case models.DenominatorAnsweredCount:
		return answered * instrument.PointsPerQuestion()
	default:
		return 0
	}
}

// Percentage rounds raw/denominator*100 half away from zero.
func Percentage(raw, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Round(float64(raw) / float64(denominator) * 100))
}

// Normalize converts a tally into ordered dimension scores.
func Normalize(instrument *models.Instrument, t *Tally) []models.DimensionScore {
	denominator := Denominator(instrument, t.Answered)
	scores := make([]models.DimensionScore, 0, len(t.Dimensions))
	for _, d := range t.Dimensions {
		pct := Percentage(t.Raw[d], denominator)
		band := models.BandFor(pct)
		scores = append(scores, models.DimensionScore{
			Dimension:  d,
			Raw:        t.Raw[d],
			Percentage: pct,
			Band:       band,
			BandLabel:  band.Label(),
		})
	}
	return scores
}
