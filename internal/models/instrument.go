package models

type ScoringMode string

const (
	ScoringDichotomous ScoringMode = "dichotomous"
	ScoringRanked      ScoringMode = "ranked"
)

type DenominatorPolicy string

const (
	DenominatorFixedQuestionCount DenominatorPolicy = "fixed_question_count"
	DenominatorAnsweredCount      DenominatorPolicy = "answered_count"
)

type InstrumentFamily string

const (
	FamilySingleScore InstrumentFamily = "single_score"
	FamilyMultiTrait  InstrumentFamily = "multi_trait"
)

// Slot is one of the three statements of a ranked question.
type Slot string

const (
	SlotA Slot = "a"
	SlotB Slot = "b"
	SlotC Slot = "c"
)

// RankedSlots lists the slots in their fixed evaluation order.
var RankedSlots = []Slot{SlotA, SlotB, SlotC}

const (
	DimensionVisual      = "visual"
	DimensionAuditory    = "auditory"
	DimensionKinesthetic = "kinesthetic"
)

// SlotDimensions binds each ranked slot to its representational dimension.
var SlotDimensions = map[Slot]string{
	SlotA: DimensionVisual,
	SlotB: DimensionAuditory,
	SlotC: DimensionKinesthetic,
}

// RankPointsPerQuestion is the sum of ranks 1+2+3 awarded by one complete ranked question.
const RankPointsPerQuestion = 6

type Option struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	Text      string `json:"text" yaml:"text" validate:"required"`
	Dimension string `json:"dimension" yaml:"dimension" validate:"required"`
}

type Question struct {
	ID      string          `json:"id" yaml:"id" validate:"required"`
	Prompt  string          `json:"prompt" yaml:"prompt" validate:"required"`
	Options []Option        `json:"options,omitempty" yaml:"options" validate:"omitempty,dive"`
	Slots   map[Slot]string `json:"slots,omitempty" yaml:"slots" validate:"omitempty,dive,keys,slot,endkeys,required"`
}

// Option returns the option with the given id.
func (q *Question) Option(id string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i], true
		}
	}
	return nil, false
}

func (q Question) clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]Option(nil), q.Options...)
	}
	if q.Slots != nil {
		out.Slots = make(map[Slot]string, len(q.Slots))
		for k, v := range q.Slots {
			out.Slots[k] = v
		}
	}
	return out
}

// Instrument is a questionnaire definition. Dimension order is the tie-break order.
type Instrument struct {
	ID                string            `json:"id" yaml:"id" validate:"required"`
	Title             string            `json:"title" yaml:"title" validate:"required"`
	Description       string            `json:"description" yaml:"description"`
	ScoringMode       ScoringMode       `json:"scoring_mode" yaml:"scoring_mode" validate:"required,scoring_mode"`
	DenominatorPolicy DenominatorPolicy `json:"denominator_policy" yaml:"denominator_policy" validate:"required,denominator_policy"`
	Family            InstrumentFamily  `json:"family" yaml:"family" validate:"required,instrument_family"`
	Dimensions        []string          `json:"dimensions" yaml:"dimensions" validate:"required,min=1,unique"`
	// NonScoring lists declared dimensions that absorb answers without counting toward
	// the overall score or competing for the dominant dimension.
	NonScoring        []string          `json:"non_scoring,omitempty" yaml:"non_scoring" validate:"omitempty,unique"`
	Questions         []Question        `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
}

// Question returns the question with the given id.
func (i *Instrument) Question(id string) (*Question, bool) {
	for idx := range i.Questions {
		if i.Questions[idx].ID == id {
			return &i.Questions[idx], true
		}
	}
	return nil, false
}

// HasDimension reports whether key is one of the declared dimensions.
func (i *Instrument) HasDimension(key string) bool {
	for _, d := range i.Dimensions {
		if d == key {
			return true
		}
	}
	return false
}

// IsScoring reports whether key is a declared dimension that competes for dominance.
func (i *Instrument) IsScoring(key string) bool {
	if !i.HasDimension(key) {
		return false
	}
	for _, d := range i.NonScoring {
		if d == key {
			return false
		}
	}
	return true
}

// PointsPerQuestion is the raw total one fully answered question contributes.
func (i *Instrument) PointsPerQuestion() int {
	if i.ScoringMode == ScoringRanked {
		return RankPointsPerQuestion
	}
	return 1
}

// Clone returns a deep copy.
func (i *Instrument) Clone() *Instrument {
	out := *i
	out.Dimensions = append([]string(nil), i.Dimensions...)
	if i.NonScoring != nil {
		out.NonScoring = append([]string(nil), i.NonScoring...)
	}
	out.Questions = make([]Question, len(i.Questions))
	for idx, q := range i.Questions {
		out.Questions[idx] = q.clone()
	}
	return &out
}

// InstrumentSummary is the listing view of an instrument.
type InstrumentSummary struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	ScoringMode   ScoringMode      `json:"scoring_mode"`
	Family        InstrumentFamily `json:"family"`
	Dimensions    []string         `json:"dimensions"`
	QuestionCount int              `json:"question_count"`
}

func (i *Instrument) Summary() InstrumentSummary {
	return InstrumentSummary{
		ID:            i.ID,
		Title:         i.Title,
		Description:   i.Description,
		ScoringMode:   i.ScoringMode,
		Family:        i.Family,
		Dimensions:    append([]string(nil), i.Dimensions...),
		QuestionCount: len(i.Questions),
	}
}

// Narrative is the canned interpretation attached to a dominant dimension.
type Narrative struct {
	DisplayName     string   `json:"display_name" yaml:"display_name" validate:"required"`
	Description     string   `json:"description" yaml:"description"`
	Strengths       []string `json:"strengths" yaml:"strengths"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

func (n Narrative) Clone() Narrative {
	n.Strengths = append([]string(nil), n.Strengths...)
	n.Recommendations = append([]string(nil), n.Recommendations...)
	return n
}
