// Package validation holds the small form-field checks shared by the UI
// handlers. Messages are user-facing and keyed by form field name.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator checks a single string value. It returns a user-facing message
// when the value is invalid and "" when it passes.
type Validator func(v string) string

// Required rejects empty values and values longer than maxLen runes. Length
// counts runes, not bytes, so multibyte titles are not penalized.
func Required(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fieldName + " is required."
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// Optional accepts an empty value but caps a provided one at maxLen runes.
func Optional(fieldName string, maxLen int) Validator {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if utf8.RuneCountInString(v) > maxLen {
			return fmt.Sprintf("%s cannot exceed %d characters.", fieldName, maxLen)
		}
		return ""
	}
}

// IntRange requires a whole number between minVal and maxVal inclusive.
func IntRange(fieldName string, minVal, maxVal int) Validator {
	return func(v string) string {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fieldName + " must be a number."
		}
		if i < minVal || i > maxVal {
			return fmt.Sprintf("%s must be between %d and %d.", fieldName, minVal, maxVal)
		}
		return ""
	}
}

// OneOf requires the value to match one of the options, ignoring case. The
// lesson difficulty select is the main user of this.
func OneOf(fieldName string, options []string) Validator {
	return func(v string) string {
		v = strings.ToUpper(strings.TrimSpace(v))
		for _, opt := range options {
			if v == strings.ToUpper(opt) {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", fieldName, strings.Join(options, ", "))
	}
}

// FieldValidator accumulates per-field errors across a whole form. Each field
// keeps only its first failure so the user sees one message per input.
type FieldValidator struct {
	errors map[string]string
}

// New returns an empty FieldValidator.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate runs the validators against value in order, recording the first
// failure under field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Errors returns the accumulated errors keyed by field name.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}
