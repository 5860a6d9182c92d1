package engine

import (
	"strings"
	"time"

	"github.com/procflow/procflow/internal/model"
)

// BuyerColumn is consulted from the raw row for buyer filtering. Buyer is
// not a canonical field; the filter applies only when the source data
// carries this column.
const BuyerColumn = "Buyer"

// Filter holds the predicates applied to annotated tables before
// re-aggregation. Predicates AND together; values within one predicate OR
// together. An unset predicate matches everything. Date ranges are
// inclusive on both endpoints.
type Filter struct {
	PRDateFrom *time.Time
	PRDateTo   *time.Time
	PODateFrom *time.Time
	PODateTo   *time.Time
	Categories []model.Category
	Vendors    []string
	Buyers     []string
	PRStatuses []string
	POStatuses []string
}

// IsEmpty reports whether no predicate is set.
func (f Filter) IsEmpty() bool {
	return f.PRDateFrom == nil && f.PRDateTo == nil &&
		f.PODateFrom == nil && f.PODateTo == nil &&
		len(f.Categories) == 0 && len(f.Vendors) == 0 && len(f.Buyers) == 0 &&
		len(f.PRStatuses) == 0 && len(f.POStatuses) == 0
}

// FilterPRs returns the PRs satisfying every set predicate, preserving
// order. The input slice is never mutated.
func FilterPRs(prs []model.PR, f Filter) []model.PR {
	categories := categorySet(f.Categories)
	buyers := lowerSet(f.Buyers)
	statuses := lowerSet(f.PRStatuses)

	out := make([]model.PR, 0, len(prs))
	for _, pr := range prs {
		if !withinDateRange(pr.Date, f.PRDateFrom, f.PRDateTo) {
			continue
		}
		if categories != nil {
			if _, ok := categories[pr.Category]; !ok {
				continue
			}
		}
		if !memberOf(buyers, pr.Raw[BuyerColumn]) {
			continue
		}
		if !memberOf(statuses, pr.Status) {
			continue
		}
		out = append(out, pr)
	}
	return out
}

// FilterPOs returns the POs satisfying every set predicate, preserving
// order.
func FilterPOs(pos []model.PO, f Filter) []model.PO {
	categories := categorySet(f.Categories)
	vendors := lowerSet(f.Vendors)
	statuses := lowerSet(f.POStatuses)

	out := make([]model.PO, 0, len(pos))
	for _, po := range pos {
		if !withinDateRange(po.Date, f.PODateFrom, f.PODateTo) {
			continue
		}
		if categories != nil {
			if _, ok := categories[po.Category]; !ok {
				continue
			}
		}
		if vendors != nil {
			if po.Vendor == nil || !memberOf(vendors, *po.Vendor) {
				continue
			}
		}
		if !memberOf(statuses, po.Status) {
			continue
		}
		out = append(out, po)
	}
	return out
}

// withinDateRange checks an inclusive range. With no bounds set everything
// passes; with a bound set a null date is excluded.
func withinDateRange(date, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if date == nil {
		return false
	}
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

// lowerSet builds a case-insensitive membership set; nil means the
// predicate is unset.
func lowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

func categorySet(categories []model.Category) map[model.Category]struct{} {
	if len(categories) == 0 {
		return nil
	}
	set := make(map[model.Category]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}
	return set
}

// memberOf is a no-op for a nil set.
func memberOf(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[strings.ToLower(strings.TrimSpace(value))]
	return ok
}
