package inference

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dqlens/domain/quality"
)

// Validators are total functions: any input yields true or false, never an
// error. A value that fails coercion simply does not validate.

var identifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z0-9\-_]{5,}$`),
	regexp.MustCompile(`^\d{5,}$`),
	regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}`),
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"02-Jan-2006",
}

var booleanTokens = map[string]struct{}{
	"true": {}, "false": {}, "yes": {}, "no": {}, "oui": {}, "non": {},
	"1": {}, "0": {}, "t": {}, "f": {}, "y": {}, "n": {}, "vrai": {}, "faux": {},
}

// IsNumeric reports whether the value parses as a number after light
// cleanup (decimal commas, grouping spaces).
func IsNumeric(raw string) bool {
	_, ok := ParseNumeric(raw)
	return ok
}

// ParseNumeric parses a raw cell as a float, tolerating decimal commas and
// grouping spaces.
func ParseNumeric(raw string) (float64, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return 0, false
	}
	clean = strings.ReplaceAll(clean, ",", ".")
	clean = strings.ReplaceAll(clean, " ", "")
	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// IsDate reports whether the value parses under any supported date layout
func IsDate(raw string) bool {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, clean); err == nil {
			return true
		}
	}
	return false
}

// IsBoolean reports whether the value is a recognized boolean spelling
// (French and English variants included).
func IsBoolean(raw string) bool {
	_, ok := booleanTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// IsIdentifier reports whether the value looks like an identifier: an
// uppercase alphanumeric code, a long digit run, or a UUID prefix.
func IsIdentifier(raw string) bool {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return false
	}
	for _, pattern := range identifierPatterns {
		if pattern.MatchString(clean) {
			return true
		}
	}
	return false
}

// ValidatorFor returns the validator for types that have one; the second
// return is false for types validated only structurally (categorical, name,
// text variants).
func ValidatorFor(t quality.SemanticType) (func(string) bool, bool) {
	switch t {
	case quality.TypeNumeric:
		return IsNumeric, true
	case quality.TypeDate:
		return IsDate, true
	case quality.TypeBoolean:
		return IsBoolean, true
	case quality.TypeIdentifier:
		return IsIdentifier, true
	}
	return nil, false
}
