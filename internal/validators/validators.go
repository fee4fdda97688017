// Package validators holds the field validation rules shared by the request
// schemas and the gin binding layer.
package validators

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	validator "github.com/go-playground/validator/v10"
)

var (
	// E.164-like: optional +, leading non-zero digit, 7..14 more digits.
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

	// Service durations are spoken as "<digits>min" by the voice layer.
	durationRe = regexp.MustCompile(`^\d+min$`)

	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

// IsPhone reports whether s is an acceptable E.164-like phone number.
func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsDuration reports whether s is a "<digits>min" duration string.
func IsDuration(s string) bool {
	return durationRe.MatchString(s)
}

// IsCurrency reports whether s is a three-letter uppercase currency code.
func IsCurrency(s string) bool {
	return currencyRe.MatchString(s)
}

// Register installs the custom validation tags on gin's binding engine.
// Call once at startup before any request is bound.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("duration_min", func(fl validator.FieldLevel) bool {
		return IsDuration(fl.Field().String())
	})
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return IsCurrency(fl.Field().String())
	})
}
