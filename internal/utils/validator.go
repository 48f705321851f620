// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("cpf", validateCPFField)
	validate.RegisterValidation("cep", validateCEPField)
	validate.RegisterValidation("coupon_code", validateCouponCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCPFField(fl validator.FieldLevel) bool {
	return ValidateCPF(fl.Field().String())
}

func validateCEPField(fl validator.FieldLevel) bool {
	return ValidateCEP(fl.Field().String())
}

func validateCouponCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()

	// Codes are normalized upper-case alphanumeric, 3-40 characters
	if len(code) < 3 || len(code) > 40 {
		return false
	}
	for _, r := range strings.ToUpper(code) {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "cpf":
		return "Invalid CPF"
	case "cep":
		return "Invalid CEP"
	case "coupon_code":
		return "Coupon code must be 3-40 alphanumeric characters"
	default:
		return e.Field() + " is invalid"
	}
}
