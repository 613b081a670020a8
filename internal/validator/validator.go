package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nugamoto/nugamoto/backend/internal/models"
)

type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

// FieldErrors is returned by Validate when a struct fails validation
type FieldErrors []*ErrorResponse

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		if fe.Value != "" {
			parts = append(parts, fmt.Sprintf("%s failed on %s=%s", fe.FailedField, fe.Tag, fe.Value))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.FailedField, fe.Tag))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = validator.New()

func init() {
	validate.RegisterValidation("unit_type", func(fl validator.FieldLevel) bool {
		switch v := fl.Field().Interface().(type) {
		case models.UnitType:
			return v.Valid()
		case string:
			return models.UnitType(v).Valid()
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "struct", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Validate runs ValidateStruct and wraps failures as FieldErrors
func Validate(data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return FieldErrors(errs)
	}
	return nil
}
