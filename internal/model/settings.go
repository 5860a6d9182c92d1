package model

import "strings"

// DateFormat selects how date-valued columns are interpreted during
// canonical mapping.
type DateFormat string

// Date format modes.
const (
	// DateFormatAuto attempts day-first parsing with permissive fallback.
	DateFormatAuto DateFormat = "auto"
	// DateFormatDayFirst forces dd-mm-yyyy interpretation.
	DateFormatDayFirst DateFormat = "dd-mm-yyyy"
	// DateFormatISO forces yyyy-mm-dd interpretation.
	DateFormatISO DateFormat = "yyyy-mm-dd"
)

// ParseDateFormat validates a date format mode string.
func ParseDateFormat(s string) (DateFormat, bool) {
	switch DateFormat(strings.TrimSpace(s)) {
	case DateFormatAuto:
		return DateFormatAuto, true
	case DateFormatDayFirst:
		return DateFormatDayFirst, true
	case DateFormatISO:
		return DateFormatISO, true
	}
	return DateFormatAuto, false
}

// Settings is the persisted, process-wide configuration consulted by every
// recomputation pass. It is loaded at the start of a pass and written only
// by explicit whole-object saves.
type Settings struct {
	CategoryColors         map[Category]string
	DateFormat             DateFormat
	PROpenStatuses         []string
	POOpenDeliveryStatuses []string
}

// DefaultSettings returns the configuration used before any save.
func DefaultSettings() Settings {
	return Settings{
		DateFormat:             DateFormatAuto,
		PROpenStatuses:         []string{"Open", "Pending", "In Progress"},
		POOpenDeliveryStatuses: []string{"Open", "Partial", "Delayed"},
		CategoryColors: map[Category]string{
			CategoryMRO:      "#2F80ED",
			CategoryServices: "#20B2AA",
			CategoryCapex:    "#F2994A",
			CategoryPCM:      "#8E44AD",
		},
	}
}

// ColorFor returns the display color for a category, falling back to the
// default palette for labels without a configured color.
func (s Settings) ColorFor(c Category) string {
	if color, ok := s.CategoryColors[c]; ok && color != "" {
		return color
	}
	return DefaultSettings().CategoryColors[c]
}

// Clone returns an independent copy of the settings.
func (s Settings) Clone() Settings {
	out := s
	out.PROpenStatuses = append([]string(nil), s.PROpenStatuses...)
	out.POOpenDeliveryStatuses = append([]string(nil), s.POOpenDeliveryStatuses...)
	out.CategoryColors = make(map[Category]string, len(s.CategoryColors))
	for k, v := range s.CategoryColors {
		out.CategoryColors[k] = v
	}
	return out
}
