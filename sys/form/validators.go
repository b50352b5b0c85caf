package form

import (
	"strconv"
	"strings"
)

// Pure field predicates. The email and phone checks are intentionally loose
// (substring and digit-count only) to match the contract the portal has
// always exposed; do not tighten them without a product decision.

// MinLength reports whether the trimmed value has at least min characters.
func MinLength(value string, min int) bool {
	return len(strings.TrimSpace(value)) >= min
}

// DigitsOnly strips every non-digit character from the value.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone reduces a phone number to its digits for storage.
func NormalizePhone(value string) string {
	return DigitsOnly(value)
}

// FormatPhone renders a phone number as (XXX) XXX-XXXX for display. Inputs
// with fewer than 10 digits are formatted as far as the digits reach.
func FormatPhone(value string) string {
	digits := DigitsOnly(value)
	switch {
	case digits == "":
		return ""
	case len(digits) <= 3:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		if len(digits) > 10 {
			digits = digits[:10]
		}
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

// ValidPhone requires at least 10 digits after stripping formatting.
func ValidPhone(value string) bool {
	return len(DigitsOnly(value)) >= 10
}

// ValidEmail performs the loose syntactic check the portal relies on.
func ValidEmail(value string) bool {
	return strings.Contains(value, "@") && strings.Contains(value, ".")
}

// ValidEIN requires at least 9 digits after stripping formatting.
func ValidEIN(value string) bool {
	return len(DigitsOnly(value)) >= 9
}

// ValidLocationCount requires a parseable integer greater than zero.
func ValidLocationCount(value string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return n > 0
}

// LocationCountValue parses the location count, returning nil when the field
// was left empty or does not parse.
func LocationCountValue(value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &n
}
