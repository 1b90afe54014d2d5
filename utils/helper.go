package utils

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var CountryCode = "PK"

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func DereferencePtr[T any](ptr *T, def T) T {
	if ptr == nil {
		return def
	}
	return *ptr
}

func LowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ProcessValidationErrors flattens binding failures into a field -> tag
// map so the frontend can highlight the offending inputs.
func ProcessValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	errorResponse := make(map[string]string)
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}

// NormalizePhoneNumber returns the E.164 form of a mobile number when it
// parses as a valid number for the workshop's country, otherwise the
// trimmed input unchanged. Historical records carry free-form numbers.
func NormalizePhoneNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	p, err := libphonenumber.Parse(trimmed, CountryCode)
	if err != nil {
		return trimmed
	}
	if !libphonenumber.IsValidNumber(p) {
		return trimmed
	}
	return libphonenumber.Format(p, libphonenumber.E164)
}

// FormatPKR renders a whole-rupee amount with thousands separators,
// e.g. 1234500 -> "1,234,500".
func FormatPKR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
