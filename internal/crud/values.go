package crud

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their form tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ParseOptionalFloat reads a decimal form value. Blank yields nil; both
// "1.5" and "1,5" are accepted.
func ParseOptionalFloat(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return nil, &FieldError{Field: field, Message: "must be a number"}
	}
	return &f, nil
}

// ParseOptionalInt reads an integer form value. Blank yields 0.
func ParseOptionalInt(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: field, Message: "must be a whole number"}
	}
	return n, nil
}

// FormatFloat renders f without trailing zeros.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatOptionalFloat renders f, or "" when it is unset.
func FormatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatFloat(*f)
}

// YesNo renders a boolean flag for tables.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Checked reads a checkbox value.
func Checked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

// ChoiceLabel returns the label of value among choices, or value itself.
func ChoiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
