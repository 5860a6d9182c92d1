// Package classify derives categories and open/closed lifecycle state for
// procurement records.
package classify

import (
	"strings"

	"github.com/procflow/procflow/internal/model"
)

// CategoryInputs carries the row values category resolution may consult.
// A nil field means the corresponding canonical field is unmapped or absent
// for this row; it simply cannot contribute a match.
type CategoryInputs struct {
	Explicit      *string
	MaterialGroup *string
	CostCenter    *string
	ItemType      *string
}

// strategy is one tier of the resolution policy. Tiers are tried in order;
// the first that yields a recognized label wins.
type strategy interface {
	resolve(in CategoryInputs, lookup model.CategoryLookup) (model.Category, bool)
}

// explicitStrategy accepts the value of the mapped Category column when it
// is, after trimming, exactly one of the four labels. An invalid value is
// no match, not an error.
type explicitStrategy struct{}

func (explicitStrategy) resolve(in CategoryInputs, _ model.CategoryLookup) (model.Category, bool) {
	if in.Explicit == nil {
		return model.CategoryUnknown, false
	}
	return model.ParseCategory(*in.Explicit)
}

// lookupStrategy resolves through the persisted key lookup table using one
// key field. A key that maps to an unrecognized label is treated as absent.
type lookupStrategy struct {
	key func(CategoryInputs) *string
}

func (s lookupStrategy) resolve(in CategoryInputs, lookup model.CategoryLookup) (model.Category, bool) {
	raw := s.key(in)
	if raw == nil {
		return model.CategoryUnknown, false
	}
	cat, ok := lookup[strings.TrimSpace(*raw)]
	if !ok || !cat.IsKnown() {
		return model.CategoryUnknown, false
	}
	return cat, true
}

// Resolver determines a record's category using the fixed three-tier
// policy: explicit Category column first, then the lookup table keyed by
// Material_Group, Cost_Center and Item_Type in that order, then Unknown.
type Resolver struct {
	lookup     model.CategoryLookup
	strategies []strategy
}

// NewResolver creates a resolver over a category lookup table. The lookup
// may be nil, in which case only the explicit tier can match.
func NewResolver(lookup model.CategoryLookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		strategies: []strategy{
			explicitStrategy{},
			lookupStrategy{key: func(in CategoryInputs) *string { return in.MaterialGroup }},
			lookupStrategy{key: func(in CategoryInputs) *string { return in.CostCenter }},
			lookupStrategy{key: func(in CategoryInputs) *string { return in.ItemType }},
		},
	}
}

// Resolve returns one of the four recognized labels, or Unknown when no
// tier matches. It never returns any other value.
func (r *Resolver) Resolve(in CategoryInputs) model.Category {
	for _, s := range r.strategies {
		if cat, ok := s.resolve(in, r.lookup); ok {
			return cat
		}
	}
	return model.CategoryUnknown
}
