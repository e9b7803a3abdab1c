package scoring

import (
	"testing"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_SetAnswerDichotomous(t *testing.T) {
	c := NewCollector(xyInstrument("xy", 3, models.DenominatorFixedQuestionCount, models.FamilySingleScore))

	require.NoError(t, c.SetAnswer("q1", models.Selection{OptionID: "a"}))
	require.NoError(t, c.SetAnswer("q1", models.Selection{OptionID: "b"}))

	err := c.SetAnswer("q7", models.Selection{OptionID: "a"})
	var sel *apperrors.InvalidSelectionError
	require.ErrorAs(t, err, &sel)
	assert.Equal(t, "q7", sel.QuestionID)

	err = c.SetAnswer("q2", models.Selection{OptionID: "z"})
	require.ErrorAs(t, err, &sel)
	assert.Equal(t, "z", sel.OptionID)

	assert.ErrorIs(t, c.SetAnswer("q2", models.Selection{}), apperrors.ErrInvalidSelection)
	assert.ErrorIs(t, c.SetRank("q2", models.SlotA, 1), apperrors.ErrInvalidSelection)

	assert.Equal(t, models.ResponseSet{"q1": {OptionID: "b"}}, c.Snapshot())
}

func TestCollector_SetAnswerRanked(t *testing.T) {
	c := NewCollector(vakInstrument("vak", 2))

	tests := []struct {
		name  string
		ranks map[models.Slot]int
		valid bool
	}{
		{"permutation", map[models.Slot]int{models.SlotA: 2, models.SlotB: 3, models.SlotC: 1}, true},
		{"duplicate", map[models.Slot]int{models.SlotA: 3, models.SlotB: 3, models.SlotC: 1}, false},
		{"zero", map[models.Slot]int{models.SlotA: 0, models.SlotB: 2, models.SlotC: 1}, false},
		{"missing slot", map[models.Slot]int{models.SlotA: 3, models.SlotB: 2}, false},
		{"foreign slot", map[models.Slot]int{models.SlotA: 3, models.SlotB: 2, "d": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetAnswer("v1", models.Selection{Ranks: tt.ranks})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidRankAssignment)
		})
	}
}

func TestCollector_SetRankToleratesTransientDuplicates(t *testing.T) {
	c := NewCollector(vakInstrument("vak", 1))

	require.NoError(t, c.SetRank("v1", models.SlotA, 3))
	require.NoError(t, c.SetRank("v1", models.SlotB, 3))
	assert.Equal(t, 0, c.Answered())

	require.NoError(t, c.SetRank("v1", models.SlotB, 1))
	require.NoError(t, c.SetRank("v1", models.SlotC, 2))
	assert.Equal(t, 1, c.Answered())

	assert.ErrorIs(t, c.SetRank("v1", models.SlotA, 4), apperrors.ErrInvalidRankAssignment)
	assert.ErrorIs(t, c.SetRank("v1", "d", 1), apperrors.ErrInvalidRankAssignment)
	assert.ErrorIs(t, c.SetRank("v9", models.SlotA, 1), apperrors.ErrInvalidSelection)
}

func TestCollector_ClearAndProgress(t *testing.T) {
	c := NewCollector(xyInstrument("xy", 4, models.DenominatorAnsweredCount, models.FamilyMultiTrait))
	require.NoError(t, c.SetAnswer("q1", models.Selection{OptionID: "a"}))
	require.NoError(t, c.SetAnswer("q2", models.Selection{OptionID: "b"}))
	require.NoError(t, c.SetAnswer("q3", models.Selection{OptionID: "b"}))

	assert.Equal(t, models.Progress{Answered: 3, Total: 4, Percentage: 75}, c.Progress())

	require.NoError(t, c.Clear("q2"))
	assert.Equal(t, 2, c.Answered())
	assert.ErrorIs(t, c.Clear("q9"), apperrors.ErrInvalidSelection)
}

func TestCollector_SnapshotIsDeepCopy(t *testing.T) {
	c := NewCollector(vakInstrument("vak", 1))
	require.NoError(t, c.SetAnswer("v1", models.DefaultRanking()))

	snap := c.Snapshot()
	snap["v1"].Ranks[models.SlotA] = 1
	delete(snap, "v1")

	again := c.Snapshot()
	require.Contains(t, again, "v1")
	assert.Equal(t, 3, again["v1"].Ranks[models.SlotA])
}

func TestCollector_SeedRankDefaults(t *testing.T) {
	c := NewCollector(vakInstrument("vak", 3))
	require.NoError(t, c.SetAnswer("v2", models.Selection{Ranks: map[models.Slot]int{models.SlotA: 1, models.SlotB: 2, models.SlotC: 3}}))

	c.SeedRankDefaults()
	snap := c.Snapshot()
	assert.Equal(t, models.DefaultRanking(), snap["v1"])
	assert.Equal(t, 1, snap["v2"].Ranks[models.SlotA], "answered questions keep their ranking")
	assert.Equal(t, models.DefaultRanking(), snap["v3"])

	dichotomous := NewCollector(xyInstrument("xy", 2, models.DenominatorAnsweredCount, models.FamilyMultiTrait))
	dichotomous.SeedRankDefaults()
	assert.Empty(t, dichotomous.Snapshot())
}

func TestCollector_Validate(t *testing.T) {
	c := NewCollector(vakInstrument("vak", 3))
	require.NoError(t, c.SetAnswer("v1", models.DefaultRanking()))
	require.NoError(t, c.SetRank("v2", models.SlotA, 2))

	assert.NoError(t, c.Validate(false))

	err := c.Validate(true)
	var incomplete *apperrors.IncompleteResponseSetError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "vak", incomplete.InstrumentID)
	assert.Equal(t, []string{"v2", "v3"}, incomplete.Missing)
}

func TestRestoreCollector(t *testing.T) {
	inst := vakInstrument("vak", 2)

	c, err := RestoreCollector(inst, models.ResponseSet{
		"v1": {Ranks: map[models.Slot]int{models.SlotA: 3, models.SlotB: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, c.Answered())

	_, err = RestoreCollector(inst, models.ResponseSet{"v1": {Ranks: map[models.Slot]int{models.SlotA: 5}}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRankAssignment)

	_, err = RestoreCollector(inst, models.ResponseSet{"nope": {}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelection)

	_, err = RestoreCollector(xyInstrument("xy", 1, models.DenominatorAnsweredCount, models.FamilyMultiTrait),
		models.ResponseSet{"q1": {OptionID: "c"}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSelection)
}
