// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Category is one of the four fixed business classifications assigned to
// every PR and PO, or Unknown when no resolution tier matched.
type Category string

// Category constants.
const (
	CategoryMRO      Category = "MRO"
	CategoryServices Category = "Services"
	CategoryCapex    Category = "Capex"
	CategoryPCM      Category = "PCM"
	CategoryUnknown  Category = "Unknown"
)

// Categories lists the four recognized labels in display order.
// Unknown is deliberately excluded: it marks unresolved rows and never
// participates in breakdowns.
func Categories() []Category {
	return []Category{CategoryMRO, CategoryServices, CategoryCapex, CategoryPCM}
}

// ParseCategory validates a raw label against the four recognized
// categories. Matching is exact after trimming; anything else is rejected.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.TrimSpace(s)) {
	case CategoryMRO:
		return CategoryMRO, true
	case CategoryServices:
		return CategoryServices, true
	case CategoryCapex:
		return CategoryCapex, true
	case CategoryPCM:
		return CategoryPCM, true
	}
	return CategoryUnknown, false
}

// IsKnown reports whether c is one of the four recognized labels.
func (c Category) IsKnown() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// CategoryLookup maps arbitrary key values observed in Material_Group,
// Cost_Center or Item_Type columns to a recognized category. It is
// user-owned configuration, persisted independently of any upload.
type CategoryLookup map[string]Category
