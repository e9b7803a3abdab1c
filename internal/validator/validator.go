package validator

import (
	"reflect"
	"strings"

	apperrors "github.com/SAP-F-2025/trait-assessment-service/internal/errors"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/go-playground/validator/v10"
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// Validator wraps go-playground/validator with the scoring-domain tags registered.
type Validator struct {
	structValidator *validator.Validate
}

func New() *Validator {
	structValidator := validator.New()

	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// ValidateStruct validates struct tags and returns the raw validator error.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Engine exposes the underlying validator, e.g. for gin's binding.
func (v *Validator) Engine() *validator.Validate {
	return v.structValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("scoring_mode", validateScoringMode)
	validate.RegisterValidation("denominator_policy", validateDenominatorPolicy)
	validate.RegisterValidation("instrument_family", validateInstrumentFamily)
	validate.RegisterValidation("slot", validateSlot)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func oneOf[T ~string](value string, valid ...T) bool {
	for _, v := range valid {
		if string(v) == value {
			return true
		}
	}
	return false
}

func validateScoringMode(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(), models.ScoringDichotomous, models.ScoringRanked)
}

func validateDenominatorPolicy(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(), models.DenominatorFixedQuestionCount, models.DenominatorAnsweredCount)
}

func validateInstrumentFamily(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(), models.FamilySingleScore, models.FamilyMultiTrait)
}

func validateSlot(fl validator.FieldLevel) bool {
	return oneOf(fl.Field().String(), models.RankedSlots...)
}
