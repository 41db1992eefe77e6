package validator

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Messages produced by ValidationMessage. Exported so tests can assert on
// the exact text rendered for a given rule.
const (
	ErrRequired      = "is required"
	ErrEmail         = "must be a valid email address"
	ErrMinValue      = "must be at least %s"
	ErrMaxValue      = "must be at most %s"
	ErrUrl           = "must be a valid URL"
	ErrPositivePrice = "must be a positive amount"
	ErrPassword      = "must be 8 to 25 characters long and include at least one uppercase letter, " +
		"one lowercase letter, one number, and one special character (!@#$%^&*)"
	ErrInvalid = "is invalid"
)

var hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("positive_price", validatePositivePrice)

	return validator
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

func validatePositivePrice(fl validator.FieldLevel) bool {
	price, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return price.IsPositive()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "email":
		return ErrEmail
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "url":
		return ErrUrl
	case "positive_price":
		return ErrPositivePrice
	case "password":
		return ErrPassword
	default:
		return ErrInvalid
	}
}
