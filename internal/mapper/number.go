package mapper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	dotGrouped   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	commaGrouped = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// ParseNumber extracts a float from a spreadsheet cell. Thousand
// separators (space, dot or comma grouping) are stripped and a lone comma
// is treated as a decimal point. Failure yields nil — a missing numeric
// signal, not an error.
func ParseNumber(s string) *float64 {
	token := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if token == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(normalizeNumericToken(token), 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, " ", "")
	if dotGrouped.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if commaGrouped.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && !strings.Contains(compact, ".") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return strings.ReplaceAll(compact, ",", "")
}
