package scoring

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
)

// NarrativeSource looks up the canned narrative of one dimension.
type NarrativeSource interface {
	Narrative(instrumentID, dimension string) (models.Narrative, error)
}

// NarrativeMapper attaches display names and interpretations to dimensions.
type NarrativeMapper struct {
	source NarrativeSource
}

func NewNarrativeMapper(source NarrativeSource) *NarrativeMapper {
	return &NarrativeMapper{source: source}
}

// Describe returns the narrative for the dominant dimension. Single-score instruments get
// the counselor-facing summary sentence as their description.
func (m *NarrativeMapper) Describe(instrument *models.Instrument, dominant string) (models.Narrative, error) {
	n, err := m.source.Narrative(instrument.ID, dominant)
	if err != nil {
		return models.Narrative{}, err
	}
	if instrument.Family == models.FamilySingleScore {
		n.Description = singleScoreSummary(n.DisplayName, n.Strengths)
	}
	return n, nil
}

// DisplayNames fills DisplayName on each score.
func (m *NarrativeMapper) DisplayNames(instrument *models.Instrument, scores []models.DimensionScore) error {
	for i := range scores {
		n, err := m.source.Narrative(instrument.ID, scores[i].Dimension)
		if err != nil {
			return err
		}
		scores[i].DisplayName = n.DisplayName
	}
	return nil
}

func singleScoreSummary(profile string, strengths []string) string {
	return fmt.Sprintf("بناءً على إجاباتك، أنت تمتلك شخصية %s مع نقاط قوة في %s.",
		profile, strings.Join(strengths, " و "))
}
