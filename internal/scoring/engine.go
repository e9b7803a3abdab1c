// Package scoring turns a respondent's selections into normalized trait profiles.
//
// The pipeline is Collector -> (dichotomous | ranked) evaluator -> Normalize ->
// Dominant -> NarrativeMapper -> Assemble. Every stage after collection is a pure
// function of the instrument and a response snapshot.
package scoring

import (
	"sort"

	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
)

// InstrumentSource is the read side of the instrument catalog.
type InstrumentSource interface {
	GetInstrument(id string) (*models.Instrument, error)
	NarrativeSource
}

type Options struct {
	// RequireComplete rejects response sets with unanswered or partially ranked questions.
	RequireComplete bool
	// SeedRankDefaults pre-fills untouched ranked questions with the legacy A=3, B=2, C=1.
	SeedRankDefaults bool
}

type Engine struct {
	source     InstrumentSource
	narratives *NarrativeMapper
	options    Options
}

func NewEngine(source InstrumentSource, options Options) *Engine {
	return &Engine{
		source:     source,
		narratives: NewNarrativeMapper(source),
		options:    options,
	}
}

// WithOptions returns an engine sharing the same catalog with different options.
func (e *Engine) WithOptions(options Options) *Engine {
	return &Engine{
		source:     e.source,
		narratives: e.narratives,
		options:    options,
	}
}

func (e *Engine) Options() Options {
	return e.options
}

// Instrument returns a copy of the instrument with the given id.
func (e *Engine) Instrument(instrumentID string) (*models.Instrument, error) {
	return e.source.GetInstrument(instrumentID)
}

// Evaluate validates a complete response set the way a collector would and scores it.
func (e *Engine) Evaluate(instrumentID string, responses models.ResponseSet) (models.EvaluationResult, error) {
	instrument, err := e.source.GetInstrument(instrumentID)
	if err != nil {
		return models.EvaluationResult{}, err
	}

	c, err := Collect(instrument, responses)
	if err != nil {
		return models.EvaluationResult{}, err
	}
	if e.options.SeedRankDefaults {
		c.SeedRankDefaults()
	}
	return e.EvaluateCollector(c)
}

// EvaluateCollector scores a snapshot of the collector's current answers.
func (e *Engine) EvaluateCollector(c *Collector) (models.EvaluationResult, error) {
	if err := c.Validate(e.options.RequireComplete); err != nil {
		return models.EvaluationResult{}, err
	}
	return e.score(c.Instrument(), c.Snapshot())
}

func (e *Engine) score(instrument *models.Instrument, responses models.ResponseSet) (models.EvaluationResult, error) {
	var (
		tally    *Tally
		validity *models.RankedValidity
	)
	switch instrument.ScoringMode {
	case models.ScoringRanked:
		t, v := EvaluateRanked(instrument, responses)
		tally, validity = t, &v
	default:
		tally = EvaluateDichotomous(instrument, responses)
	}

	scores := Normalize(instrument, tally)
	if err := e.narratives.DisplayNames(instrument, scores); err != nil {
		return models.EvaluationResult{}, err
	}

	dominant := Dominant(tally)
	narrative, err := e.narratives.Describe(instrument, dominant)
	if err != nil {
		return models.EvaluationResult{}, err
	}

	return Assemble(instrument, tally, scores, dominant, narrative, validity), nil
}

// Collect loads a submitted response set into a new collector with SetAnswer semantics.
// Unknown question ids are reported first, in sorted order, then answers are applied in
// question order so the reported error is deterministic.
func Collect(instrument *models.Instrument, responses models.ResponseSet) (*Collector, error) {
	c := NewCollector(instrument)

	var unknown []string
	for questionID := range responses {
		if _, ok := instrument.Question(questionID); !ok {
			unknown = append(unknown, questionID)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		_, err := c.question(unknown[0])
		return nil, err
	}

	for _, q := range instrument.Questions {
		sel, ok := responses[q.ID]
		if !ok {
			continue
		}
		if err := c.SetAnswer(q.ID, sel); err != nil {
			return nil, err
		}
	}
	return c, nil
}
