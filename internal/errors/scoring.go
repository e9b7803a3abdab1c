package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInstrumentNotFound    = errors.New("instrument not found")
	ErrInvalidSelection      = errors.New("invalid selection")
	ErrInvalidRankAssignment = errors.New("invalid rank assignment")
	ErrIncompleteResponseSet = errors.New("incomplete response set")
	ErrConfiguration         = errors.New("configuration error")
)

// NotFoundError reports an unknown instrument id.
type NotFoundError struct {
	InstrumentID string `json:"instrument_id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("instrument %q not found", e.InstrumentID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrInstrumentNotFound
}

// InvalidSelectionError reports an unknown question id or a foreign option id.
type InvalidSelectionError struct {
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id,omitempty"`
	Reason     string `json:"reason"`
}

func (e *InvalidSelectionError) Error() string {
	if e.OptionID != "" {
		return fmt.Sprintf("invalid selection for question %q option %q: %s", e.QuestionID, e.OptionID, e.Reason)
	}
	return fmt.Sprintf("invalid selection for question %q: %s", e.QuestionID, e.Reason)
}

func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// InvalidRankAssignmentError reports a rank outside 1..3 or a rank used twice in one question.
type InvalidRankAssignmentError struct {
	QuestionID string `json:"question_id"`
	Slot       string `json:"slot,omitempty"`
	Value      int    `json:"value"`
	Reason     string `json:"reason"`
}

func (e *InvalidRankAssignmentError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("invalid rank %d for question %q slot %q: %s", e.Value, e.QuestionID, e.Slot, e.Reason)
	}
	return fmt.Sprintf("invalid rank assignment for question %q: %s", e.QuestionID, e.Reason)
}

func (e *InvalidRankAssignmentError) Is(target error) bool {
	return target == ErrInvalidRankAssignment
}

// IncompleteResponseSetError lists the questions that are unanswered or partially ranked.
type IncompleteResponseSetError struct {
	InstrumentID string   `json:"instrument_id"`
	Missing      []string `json:"missing"`
}

func (e *IncompleteResponseSetError) Error() string {
	return fmt.Sprintf("instrument %q has %d incomplete questions: %s",
		e.InstrumentID, len(e.Missing), strings.Join(e.Missing, ", "))
}

func (e *IncompleteResponseSetError) Is(target error) bool {
	return target == ErrIncompleteResponseSet
}

// ConfigurationError reports a broken instrument or narrative definition.
type ConfigurationError struct {
	InstrumentID string `json:"instrument_id,omitempty"`
	Dimension    string `json:"dimension,omitempty"`
	Message      string `json:"message"`
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.InstrumentID != "" {
		fmt.Fprintf(&b, " in instrument %q", e.InstrumentID)
	}
	if e.Dimension != "" {
		fmt.Fprintf(&b, " dimension %q", e.Dimension)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func NewNotFoundError(instrumentID string) *NotFoundError {
	return &NotFoundError{InstrumentID: instrumentID}
}

func NewInvalidSelectionError(questionID, optionID, reason string) *InvalidSelectionError {
	return &InvalidSelectionError{QuestionID: questionID, OptionID: optionID, Reason: reason}
}

func NewInvalidRankAssignmentError(questionID, slot string, value int, reason string) *InvalidRankAssignmentError {
	return &InvalidRankAssignmentError{QuestionID: questionID, Slot: slot, Value: value, Reason: reason}
}

func NewIncompleteResponseSetError(instrumentID string, missing []string) *IncompleteResponseSetError {
	return &IncompleteResponseSetError{InstrumentID: instrumentID, Missing: missing}
}

func NewConfigurationError(instrumentID, dimension, message string) *ConfigurationError {
	return &ConfigurationError{InstrumentID: instrumentID, Dimension: dimension, Message: message}
}

// IsScoringInputError reports whether err was caused by the submitted answers.
func IsScoringInputError(err error) bool {
	return errors.Is(err, ErrInvalidSelection) ||
		errors.Is(err, ErrInvalidRankAssignment) ||
		errors.Is(err, ErrIncompleteResponseSet)
}
