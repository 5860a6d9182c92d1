package model

import "time"

// PR is a purchase requisition row after canonical field mapping.
// Optional fields are pointers: nil means the field was unmapped, absent
// from the source table, or failed to parse. Raw preserves the original
// row keyed by source column name for passthrough and export.
type PR struct {
	Date          *time.Time
	Amount        *float64
	MaterialGroup *string
	CostCenter    *string
	ItemType      *string
	RawCategory   *string // value under the mapped Category column, unvalidated
	Raw           map[string]string
	Number        string
	Status        string
	Category      Category
	IsOpen        bool
}

// PO is a purchase order row after canonical field mapping.
type PO struct {
	Date           *time.Time
	Quantity       *float64
	GRNQuantity    *float64
	Vendor         *string
	PRNumber       *string
	PRLine         *string
	RawCategory    *string
	Raw            map[string]string
	Number         string
	Status         string
	DeliveryStatus string
	Category       Category
	IsOpenDelivery bool
}

// Metrics holds the four headline counts produced by a recomputation pass.
type Metrics struct {
	TotalPRs        int
	TotalPOs        int
	OpenPRs         int
	OpenDeliveryPOs int
}

// CategoryCount is one row of the category cross-tab: PR and PO counts
// carrying a recognized label.
type CategoryCount struct {
	Category Category
	PRs      int
	POs      int
}

// TrendPoint is one (month, category) count in a monthly trend series.
// Month is formatted as YYYY-MM.
type TrendPoint struct {
	Month    string
	Category Category
	Count    int
}

// HealthReport collects the data-quality diagnostics surfaced to the user.
// Unknown-category counts flag rows no resolution tier could classify.
type HealthReport struct {
	MissingPRFields    []string
	MissingPOFields    []string
	UnknownCategoryPRs int
	UnknownCategoryPOs int
}
