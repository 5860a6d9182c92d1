package classify

import (
	"strings"

	"github.com/procflow/procflow/internal/model"
)

// statusSet is a lowercase membership set built from a configured status
// list.
type statusSet map[string]struct{}

func newStatusSet(statuses []string) statusSet {
	set := make(statusSet, len(statuses))
	for _, s := range statuses {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

func (s statusSet) contains(status string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// LinkedPRNumbers collects the trimmed PR numbers referenced by any PO.
// A PR whose number is absent from this set has no downstream procurement
// activity and is presumed open.
func LinkedPRNumbers(pos []model.PO) map[string]struct{} {
	linked := make(map[string]struct{})
	for _, po := range pos {
		if po.PRNumber == nil {
			continue
		}
		if n := strings.TrimSpace(*po.PRNumber); n != "" {
			linked[n] = struct{}{}
		}
	}
	return linked
}

// Lifecycle classifies open/closed state for PRs and POs under one
// settings snapshot. Status comparisons are case-insensitive; the three
// triggers of each rule are independent and additive.
type Lifecycle struct {
	prOpen statusSet
	poOpen statusSet
}

// NewLifecycle builds a classifier from the configured open-status lists.
func NewLifecycle(settings model.Settings) *Lifecycle {
	return &Lifecycle{
		prOpen: newStatusSet(settings.PROpenStatuses),
		poOpen: newStatusSet(settings.POOpenDeliveryStatuses),
	}
}

// IsOpenPR reports whether a PR is open: its status is anything other than
// "closed", or no PO references its number, or its status is in the
// configured PR-open set.
func (l *Lifecycle) IsOpenPR(pr model.PR, linked map[string]struct{}) bool {
	status := strings.ToLower(strings.TrimSpace(pr.Status))
	if status != "closed" {
		return true
	}
	if _, ok := linked[strings.TrimSpace(pr.Number)]; !ok {
		return true
	}
	return l.prOpen.contains(status)
}

// IsOpenDelivery reports whether a PO is open for delivery: outstanding
// quantity remains, or its delivery status is in the configured set, or
// its delivery status is exactly "open".
func (l *Lifecycle) IsOpenDelivery(po model.PO) bool {
	if po.Quantity != nil && po.GRNQuantity != nil && *po.Quantity-*po.GRNQuantity > 0 {
		return true
	}
	status := strings.ToLower(strings.TrimSpace(po.DeliveryStatus))
	if l.poOpen.contains(status) {
		return true
	}
	return status == "open"
}
