package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionAlreadyEvaluated = errors.New("session already evaluated")
	ErrSessionConflict         = errors.New("session was modified concurrently")

	ErrResultNotFound = errors.New("evaluation result not found")
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, apperrors.ErrInstrumentNotFound)
}

// IsValidation reports request validation failures as well as rejected
// selections, rank assignments and incomplete response sets.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || apperrors.IsScoringInputError(err) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSessionConflict) ||
		errors.Is(err, ErrSessionAlreadyEvaluated)
}

// IsConfiguration reports a broken instrument definition, which is a server
// fault rather than a caller mistake.
func IsConfiguration(err error) bool {
	return errors.Is(err, apperrors.ErrConfiguration)
}
