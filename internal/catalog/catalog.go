// Package catalog holds the immutable instrument definitions and their narratives.
package catalog

import (
	"fmt"
	"sort"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
)

// Narratives maps instrument id -> dimension -> narrative.
type Narratives map[string]map[string]models.Narrative

// Catalog is safe for concurrent use; it is never mutated after New returns.
type Catalog struct {
	instruments map[string]*models.Instrument
	order       []string
	narratives  Narratives
}

// New validates the definitions and builds a catalog from private copies of them.
func New(instruments []*models.Instrument, narratives Narratives, v *validator.Validator) (*Catalog, error) {
	if v == nil {
		v = validator.New()
	}

	c := &Catalog{
		instruments: make(map[string]*models.Instrument, len(instruments)),
		narratives:  make(Narratives, len(narratives)),
	}

	for _, inst := range instruments {
		if inst == nil {
			continue
		}
		if err := v.Validate(inst); err != nil {
			return nil, apperrors.NewConfigurationError(inst.ID, "", err.Error())
		}
		if _, exists := c.instruments[inst.ID]; exists {
			return nil, apperrors.NewConfigurationError(inst.ID, "", "duplicate instrument id")
		}
		if err := checkInstrument(inst); err != nil {
			return nil, err
		}
		if err := checkNarratives(inst, narratives[inst.ID]); err != nil {
			return nil, err
		}

		c.instruments[inst.ID] = inst.Clone()
		c.order = append(c.order, inst.ID)

		dims := make(map[string]models.Narrative, len(inst.Dimensions))
		for _, d := range inst.Dimensions {
			dims[d] = narratives[inst.ID][d].Clone()
		}
		c.narratives[inst.ID] = dims
	}

	sort.Strings(c.order)
	return c, nil
}

// GetInstrument returns a deep copy of the instrument with the given id.
func (c *Catalog) GetInstrument(id string) (*models.Instrument, error) {
	inst, ok := c.instruments[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(id)
	}
	return inst.Clone(), nil
}

// List returns deep copies of all instruments ordered by id.
func (c *Catalog) List() []*models.Instrument {
	out := make([]*models.Instrument, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.instruments[id].Clone())
	}
	return out
}

func (c *Catalog) Summaries() []models.InstrumentSummary {
	out := make([]models.InstrumentSummary, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.instruments[id].Summary())
	}
	return out
}

// Narrative returns the narrative for one dimension of an instrument.
func (c *Catalog) Narrative(instrumentID, dimension string) (models.Narrative, error) {
	dims, ok := c.narratives[instrumentID]
	if !ok {
		return models.Narrative{}, apperrors.NewNotFoundError(instrumentID)
	}
	n, ok := dims[dimension]
	if !ok {
		return models.Narrative{}, apperrors.NewConfigurationError(instrumentID, dimension, "no narrative for dimension")
	}
	return n.Clone(), nil
}

func checkInstrument(inst *models.Instrument) error {
	seen := make(map[string]bool, len(inst.Questions))
	for _, q := range inst.Questions {
		if seen[q.ID] {
			return apperrors.NewConfigurationError(inst.ID, "", fmt.Sprintf("duplicate question id %q", q.ID))
		}
		seen[q.ID] = true
	}

	for _, d := range inst.NonScoring {
		if !inst.HasDimension(d) {
			return apperrors.NewConfigurationError(inst.ID, d, "non-scoring dimension is not declared")
		}
	}
	if len(inst.NonScoring) >= len(inst.Dimensions) {
		return apperrors.NewConfigurationError(inst.ID, "", "at least one dimension must be scoring")
	}

	switch inst.ScoringMode {
	case models.ScoringDichotomous:
		return checkDichotomous(inst)
	case models.ScoringRanked:
		return checkRanked(inst)
	}
	return apperrors.NewConfigurationError(inst.ID, "", fmt.Sprintf("unsupported scoring mode %q", inst.ScoringMode))
}

func checkDichotomous(inst *models.Instrument) error {
	for _, q := range inst.Questions {
		if len(q.Options) != 2 {
			return apperrors.NewConfigurationError(inst.ID, "",
				fmt.Sprintf("question %q must have exactly two options, has %d", q.ID, len(q.Options)))
		}
		if len(q.Slots) > 0 {
			return apperrors.NewConfigurationError(inst.ID, "", fmt.Sprintf("question %q declares ranked slots", q.ID))
		}
		if q.Options[0].ID == q.Options[1].ID {
			return apperrors.NewConfigurationError(inst.ID, "", fmt.Sprintf("question %q repeats option id %q", q.ID, q.Options[0].ID))
		}
		for _, opt := range q.Options {
			if !inst.HasDimension(opt.Dimension) {
				return apperrors.NewConfigurationError(inst.ID, opt.Dimension,
					fmt.Sprintf("question %q option %q is tagged with an undeclared dimension", q.ID, opt.ID))
			}
		}
	}
	return nil
}

func checkRanked(inst *models.Instrument) error {
	if len(inst.Dimensions) != len(models.RankedSlots) {
		return apperrors.NewConfigurationError(inst.ID, "", "ranked instruments declare exactly visual, auditory and kinesthetic")
	}
	for i, slot := range models.RankedSlots {
		if inst.Dimensions[i] != models.SlotDimensions[slot] {
			return apperrors.NewConfigurationError(inst.ID, inst.Dimensions[i],
				fmt.Sprintf("slot %q must map to %q", slot, models.SlotDimensions[slot]))
		}
	}

	for _, q := range inst.Questions {
		if len(q.Options) > 0 {
			return apperrors.NewConfigurationError(inst.ID, "", fmt.Sprintf("question %q declares options", q.ID))
		}
		if len(q.Slots) != len(models.RankedSlots) {
			return apperrors.NewConfigurationError(inst.ID, "",
				fmt.Sprintf("question %q must have exactly three slots, has %d", q.ID, len(q.Slots)))
		}
		for _, slot := range models.RankedSlots {
			if q.Slots[slot] == "" {
				return apperrors.NewConfigurationError(inst.ID, "", fmt.Sprintf("question %q is missing slot %q", q.ID, slot))
			}
		}
	}
	return nil
}

func checkNarratives(inst *models.Instrument, dims map[string]models.Narrative) error {
	for _, d := range inst.Dimensions {
		n, ok := dims[d]
		if !ok || n.DisplayName == "" {
			return apperrors.NewConfigurationError(inst.ID, d, "no narrative for dimension")
		}
	}
	return nil
}
