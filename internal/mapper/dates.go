// Package mapper applies persisted field mappings to raw tables, producing
// canonically-named, typed records.
package mapper

import (
	"strings"
	"time"

	"github.com/procflow/procflow/internal/model"
)

// dayFirstLayouts interpret ambiguous dates with the day leading.
var dayFirstLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2-1-2006",
	"2/1/2006",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
	"02-01-06",
}

// isoLayouts interpret dates year-first.
var isoLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate interprets a date string under the configured mode. Forced
// modes prefer their own layouts but fall back to the other family rather
// than failing; auto prefers day-first. An unparseable string yields nil,
// never an error.
func ParseDate(s string, mode model.DateFormat) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var layouts []string
	switch mode {
	case model.DateFormatISO:
		layouts = append(append([]string{}, isoLayouts...), dayFirstLayouts...)
	default:
		// auto and dd-mm-yyyy both lead with day-first interpretation
		layouts = append(append([]string{}, dayFirstLayouts...), isoLayouts...)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
