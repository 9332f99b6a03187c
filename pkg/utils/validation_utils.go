package utils

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance with the project's custom rules
// registered. Use it for struct validation beyond what binding tags cover.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration errors only occur for blank tags or nil funcs.
	_ = v.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return IsValidPhoneNumber(fl.Field().String())
	})
	_ = v.RegisterValidation("http_url_scheme", func(fl validator.FieldLevel) bool {
		return IsValidWebsiteURL(fl.Field().String())
	})
	_ = v.RegisterValidation("registration_number", func(fl validator.FieldLevel) bool {
		return IsValidRegistrationNumber(fl.Field().String())
	})
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidPhoneNumber accepts numbers with 9 to 15 digits once separators and
// country-code punctuation are stripped.
func IsValidPhoneNumber(phone string) bool {
	digits := 0
	for _, c := range phone {
		if unicode.IsDigit(c) {
			digits++
		}
	}
	return digits >= 9 && digits <= 15
}

// IsValidWebsiteURL requires an explicit http or https scheme.
func IsValidWebsiteURL(url string) bool {
	return strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://")
}

// IsValidRegistrationNumber checks the registration number length bounds.
func IsValidRegistrationNumber(regNum string) bool {
	return len(regNum) >= 5 && len(regNum) <= 20
}
