package model

// DatasetKind identifies which of the two source datasets a table, mapping
// or record belongs to. The values double as the expected sheet names.
type DatasetKind string

// Dataset kinds.
const (
	KindPR DatasetKind = "PRs"
	KindPO DatasetKind = "POs"
)

// Canonical field names for the PR dataset.
const (
	FieldPRNumber      = "PR_Number"
	FieldPRDate        = "PR_Date"
	FieldPRStatus      = "PR_Status"
	FieldPRAmount      = "PR_Amount"
	FieldMaterialGroup = "Material_Group"
	FieldCostCenter    = "Cost_Center"
	FieldItemType      = "Item_Type"
	FieldCategory      = "Category"
)

// Canonical field names for the PO dataset.
const (
	FieldPONumber       = "PO_Number"
	FieldPODate         = "PO_Date"
	FieldPOStatus       = "PO_Status"
	FieldDeliveryStatus = "Delivery_Status"
	FieldVendor         = "Vendor"
	FieldPOQuantity     = "PO_Quantity"
	FieldGRNQuantity    = "GRN_Quantity"
	FieldPRLine         = "PR_Line"
)

// RequiredFields returns the canonical fields that must be mapped for a
// dataset kind to be considered healthy. Missing mappings are surfaced as
// diagnostics only; they never block aggregation.
func RequiredFields(kind DatasetKind) []string {
	if kind == KindPO {
		return []string{FieldPONumber, FieldPODate, FieldPOStatus, FieldDeliveryStatus}
	}
	return []string{FieldPRNumber, FieldPRDate, FieldPRStatus}
}

// OptionalFields returns the remaining canonical fields for a dataset kind.
func OptionalFields(kind DatasetKind) []string {
	if kind == KindPO {
		return []string{FieldVendor, FieldPOQuantity, FieldGRNQuantity, FieldPRNumber, FieldPRLine, FieldCategory}
	}
	return []string{FieldPRAmount, FieldMaterialGroup, FieldCostCenter, FieldItemType, FieldCategory}
}

// AllFields returns required plus optional canonical fields for a kind.
func AllFields(kind DatasetKind) []string {
	return append(RequiredFields(kind), OptionalFields(kind)...)
}

// FieldMapping maps canonical field names to raw spreadsheet column names
// for one dataset kind. A missing or empty entry means the field is not
// mapped. Each canonical field has at most one source column.
type FieldMapping map[string]string

// Column returns the raw column mapped to a canonical field, and whether a
// mapping exists.
func (m FieldMapping) Column(field string) (string, bool) {
	col, ok := m[field]
	if !ok || col == "" {
		return "", false
	}
	return col, true
}

// Clone returns an independent copy of the mapping.
func (m FieldMapping) Clone() FieldMapping {
	out := make(FieldMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MissingRequiredFields lists the required canonical fields of a kind that
// have no mapped source column.
func MissingRequiredFields(kind DatasetKind, m FieldMapping) []string {
	var missing []string
	for _, field := range RequiredFields(kind) {
		if _, ok := m.Column(field); !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
