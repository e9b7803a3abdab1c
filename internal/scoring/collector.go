package scoring

import (
	"math"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
)

// Collector validates and stores one respondent's answers to one instrument.
// It is owned by a single session and is not safe for concurrent use.
type Collector struct {
	instrument *models.Instrument
	responses  models.ResponseSet
}

func NewCollector(instrument *models.Instrument) *Collector {
	return &Collector{
		instrument: instrument,
		responses:  make(models.ResponseSet),
	}
}

// RestoreCollector rebuilds a collector from previously stored responses. Partially
// edited rankings are accepted as long as every stored value is in range.
func RestoreCollector(instrument *models.Instrument, responses models.ResponseSet) (*Collector, error) {
	c := NewCollector(instrument)
	for questionID, sel := range responses {
		q, err := c.question(questionID)
		if err != nil {
			return nil, err
		}
		if instrument.ScoringMode == models.ScoringRanked {
			for slot, value := range sel.Ranks {
				if err := checkRank(q.ID, slot, value); err != nil {
					return nil, err
				}
			}
			c.responses[questionID] = sel.Clone()
			continue
		}
		if err := c.checkOption(q, sel); err != nil {
			return nil, err
		}
		c.responses[questionID] = sel.Clone()
	}
	return c, nil
}

func (c *Collector) Instrument() *models.Instrument {
	return c.instrument
}

// SetAnswer stores a full selection for one question, replacing any previous one.
func (c *Collector) SetAnswer(questionID string, sel models.Selection) error {
	q, err := c.question(questionID)
	if err != nil {
		return err
	}

	if c.instrument.ScoringMode == models.ScoringRanked {
		if err := checkRanking(q.ID, sel); err != nil {
			return err
		}
		c.responses[questionID] = models.Selection{Ranks: copyRanks(sel.Ranks)}
		return nil
	}

	if err := c.checkOption(q, sel); err != nil {
		return err
	}
	c.responses[questionID] = models.Selection{OptionID: sel.OptionID}
	return nil
}

// SetRank edits one slot of a ranked question. Duplicate ranks are tolerated while
// editing; Validate and the ranked evaluator report them.
func (c *Collector) SetRank(questionID string, slot models.Slot, value int) error {
	q, err := c.question(questionID)
	if err != nil {
		return err
	}
	if c.instrument.ScoringMode != models.ScoringRanked {
		return apperrors.NewInvalidSelectionError(q.ID, "", "question is not ranked")
	}
	if err := checkRank(q.ID, slot, value); err != nil {
		return err
	}

	sel := c.responses[questionID]
	ranks := copyRanks(sel.Ranks)
	if ranks == nil {
		ranks = make(map[models.Slot]int, len(models.RankedSlots))
	}
	ranks[slot] = value
	c.responses[questionID] = models.Selection{Ranks: ranks}
	return nil
}

// Clear marks a question as unanswered.
func (c *Collector) Clear(questionID string) error {
	if _, err := c.question(questionID); err != nil {
		return err
	}
	delete(c.responses, questionID)
	return nil
}

// SeedRankDefaults fills every untouched ranked question with the legacy default
// ranking A=3, B=2, C=1. It does nothing for dichotomous instruments.
func (c *Collector) SeedRankDefaults() {
	if c.instrument.ScoringMode != models.ScoringRanked {
		return
	}
	for _, q := range c.instrument.Questions {
		if _, ok := c.responses[q.ID]; !ok {
			c.responses[q.ID] = models.DefaultRanking()
		}
	}
}

// Snapshot returns a deep copy of the stored responses.
func (c *Collector) Snapshot() models.ResponseSet {
	return c.responses.Clone()
}

// Validate checks the stored responses. A ranked question with all three slots set must
// be a permutation of {1,2,3} whatever requireComplete says, so duplicate ranks left by
// SetRank never reach an evaluator. With requireComplete, unranked, partially ranked or
// unanswered questions yield IncompleteResponseSet.
func (c *Collector) Validate(requireComplete bool) error {
	var missing []string
	for _, q := range c.instrument.Questions {
		sel, ok := c.responses[q.ID]
		if c.instrument.ScoringMode == models.ScoringRanked {
			if ok && len(sel.Ranks) == len(models.RankedSlots) {
				if err := checkRanking(q.ID, sel); err != nil {
					return err
				}
				continue
			}
			missing = append(missing, q.ID)
			continue
		}
		if !ok {
			missing = append(missing, q.ID)
		}
	}

	if requireComplete && len(missing) > 0 {
		return apperrors.NewIncompleteResponseSetError(c.instrument.ID, missing)
	}
	return nil
}

// Answered counts fully answered questions.
func (c *Collector) Answered() int {
	return countAnswered(c.instrument, c.responses)
}

func (c *Collector) Progress() models.Progress {
	total := len(c.instrument.Questions)
	answered := c.Answered()
	p := models.Progress{Answered: answered, Total: total}
	if total > 0 {
		p.Percentage = int(math.Round(float64(answered) / float64(total) * 100))
	}
	return p
}

func (c *Collector) question(questionID string) (*models.Question, error) {
	q, ok := c.instrument.Question(questionID)
	if !ok {
		return nil, apperrors.NewInvalidSelectionError(questionID, "", "unknown question")
	}
	return q, nil
}

func (c *Collector) checkOption(q *models.Question, sel models.Selection) error {
	if sel.OptionID == "" {
		return apperrors.NewInvalidSelectionError(q.ID, "", "no option selected")
	}
	if _, ok := q.Option(sel.OptionID); !ok {
		return apperrors.NewInvalidSelectionError(q.ID, sel.OptionID, "option does not belong to question")
	}
	return nil
}

func checkRank(questionID string, slot models.Slot, value int) error {
	if _, ok := models.SlotDimensions[slot]; !ok {
		return apperrors.NewInvalidRankAssignmentError(questionID, string(slot), value, "unknown slot")
	}
	if value < 1 || value > 3 {
		return apperrors.NewInvalidRankAssignmentError(questionID, string(slot), value, "rank must be 1, 2 or 3")
	}
	return nil
}

// checkRanking requires a full permutation of {1,2,3} over the three slots.
func checkRanking(questionID string, sel models.Selection) error {
	if len(sel.Ranks) != len(models.RankedSlots) {
		return apperrors.NewInvalidRankAssignmentError(questionID, "", len(sel.Ranks), "all three slots must be ranked")
	}
	used := make(map[int]models.Slot, len(models.RankedSlots))
	for _, slot := range models.RankedSlots {
		value, ok := sel.Ranks[slot]
		if !ok {
			return apperrors.NewInvalidRankAssignmentError(questionID, string(slot), 0, "slot is not ranked")
		}
		if err := checkRank(questionID, slot, value); err != nil {
			return err
		}
		if other, dup := used[value]; dup {
			return apperrors.NewInvalidRankAssignmentError(questionID, string(slot), value,
				"rank already given to slot "+string(other))
		}
		used[value] = slot
	}
	return nil
}

func copyRanks(ranks map[models.Slot]int) map[models.Slot]int {
	if ranks == nil {
		return nil
	}
	out := make(map[models.Slot]int, len(ranks))
	for k, v := range ranks {
		out[k] = v
	}
	return out
}

func countAnswered(instrument *models.Instrument, responses models.ResponseSet) int {
	answered := 0
	for _, q := range instrument.Questions {
		sel, ok := responses[q.ID]
		if !ok {
			continue
		}
		if instrument.ScoringMode == models.ScoringRanked {
			if sel.IsCompleteRanking() {
				answered++
			}
			continue
		}
		if sel.OptionID != "" {
			answered++
		}
	}
	return answered
}
