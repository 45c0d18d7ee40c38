package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"Tunedeck/internal/apperr"
)

// RegisterValidations installs custom rules on gin's binding validator.
// "notblank" rejects strings that are empty after trimming.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine")
	}
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// bindingError converts a gin binding failure into a ValidationError naming
// the first offending field, so the client sees a readable message instead
// of validator internals.
func bindingError(err error) *apperr.ValidationError {
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required", "notblank":
			return apperr.Validation(field, "is required")
		case "max":
			return apperr.Validation(field, fmt.Sprintf("must be at most %s characters", fe.Param()))
		case "min":
			return apperr.Validation(field, fmt.Sprintf("must be at least %s", fe.Param()))
		default:
			return apperr.Validation(field, "is invalid")
		}
	}
	return apperr.Validation("body", "is malformed")
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
