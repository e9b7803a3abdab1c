package scoring

import (
	"testing"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		raw, denominator, want int
	}{
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{1, 6, 17},
		{27, 45, 60},
		{0, 0, 0},
		{5, 0, 0},
		{45, 45, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.raw, tt.denominator), "Percentage(%d, %d)", tt.raw, tt.denominator)
	}
}

func TestDenominator(t *testing.T) {
	fixed := xyInstrument("fixed", 45, models.DenominatorFixedQuestionCount, models.FamilySingleScore)
	answered := xyInstrument("answered", 45, models.DenominatorAnsweredCount, models.FamilySingleScore)
	vak := vakInstrument("vak", 12)

	assert.Equal(t, 45, Denominator(fixed, 10))
	assert.Equal(t, 10, Denominator(answered, 10))
	assert.Equal(t, 0, Denominator(answered, 0))
	assert.Equal(t, 60, Denominator(vak, 10))

	vak.DenominatorPolicy = models.DenominatorFixedQuestionCount
	assert.Equal(t, 72, Denominator(vak, 10))
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name string
		dims []string
		raw  map[string]int
		want string
	}{
		{"clear winner", []string{"a", "b", "c"}, map[string]int{"a": 1, "b": 5, "c": 2}, "b"},
		{"tie keeps earliest", []string{"a", "b", "c"}, map[string]int{"a": 1, "b": 4, "c": 4}, "b"},
		{"all zero", []string{"a", "b"}, map[string]int{}, "a"},
		{"no dimensions", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dominant(&Tally{Dimensions: tt.dims, Raw: tt.raw}))
		})
	}

	t.Run("non-scoring skipped", func(t *testing.T) {
		tally := &Tally{
			Dimensions: []string{"a", "sink", "b"},
			Raw:        map[string]int{"a": 1, "sink": 9, "b": 2},
			NonScoring: map[string]bool{"sink": true},
		}
		assert.Equal(t, "b", Dominant(tally))
		assert.Equal(t, 3, tally.ScoringTotal())
		assert.Equal(t, 12, tally.Total())

		tally.NonScoring = map[string]bool{"a": true, "sink": true, "b": true}
		assert.Equal(t, "", Dominant(tally))
	})
}

func TestEvaluateDichotomous_SumEqualsAnswered(t *testing.T) {
	inst := xyInstrument("xy", 6, models.DenominatorAnsweredCount, models.FamilyMultiTrait)
	responses := models.ResponseSet{
		"q1": {OptionID: "a"},
		"q3": {OptionID: "b"},
		"q4": {OptionID: "b"},
		"q6": {OptionID: "a"},
	}

	tally := EvaluateDichotomous(inst, responses)
	assert.Equal(t, 4, tally.Answered)
	assert.Equal(t, tally.Answered, tally.Total())
	assert.Equal(t, map[string]int{"x": 2, "y": 2}, tally.Raw)
}

func TestNormalize_AttachesBands(t *testing.T) {
	inst := xyInstrument("xy", 5, models.DenominatorFixedQuestionCount, models.FamilyMultiTrait)
	scores := Normalize(inst, &Tally{Dimensions: inst.Dimensions, Raw: map[string]int{"x": 4, "y": 1}, Answered: 5})

	assert.Equal(t, []models.DimensionScore{
		{Dimension: "x", Raw: 4, Percentage: 80, Band: models.BandVeryStrong, BandLabel: "ميل قوي جداً"},
		{Dimension: "y", Raw: 1, Percentage: 20, Band: models.BandWeak, BandLabel: "ميل ضعيف"},
	}, scores)
}
