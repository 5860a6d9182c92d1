package mapper

import (
	"strings"

	"github.com/procflow/procflow/internal/ingest"
	"github.com/procflow/procflow/internal/model"
)

// rowReader resolves canonical fields against one raw row, honoring only
// mapping entries whose target column actually exists in the table.
type rowReader struct {
	row     map[string]string
	mapping model.FieldMapping
	table   *ingest.Table
}

// lookup returns the raw value of a canonical field, and whether the field
// is usable (mapped to an existing column). Empty cells count as absent.
func (r rowReader) lookup(field string) (string, bool) {
	col, ok := r.mapping.Column(field)
	if !ok || !r.table.Has(col) {
		return "", false
	}
	v := strings.TrimSpace(r.row[col])
	if v == "" {
		return "", false
	}
	return v, true
}

func (r rowReader) str(field string) string {
	v, _ := r.lookup(field)
	return v
}

func (r rowReader) strPtr(field string) *string {
	if v, ok := r.lookup(field); ok {
		return &v
	}
	return nil
}

func (r rowReader) numPtr(field string) *float64 {
	if v, ok := r.lookup(field); ok {
		return ParseNumber(v)
	}
	return nil
}

// UnifyPRs renames mapped columns of a raw PR table onto the canonical
// schema. Unmapped or missing fields become zero values and nil pointers;
// nothing here fails on a bad row.
func UnifyPRs(table *ingest.Table, mapping model.FieldMapping, settings model.Settings) []model.PR {
	if table.Empty() {
		return nil
	}
	prs := make([]model.PR, 0, table.Len())
	for _, row := range table.Rows {
		r := rowReader{row: row, mapping: mapping, table: table}
		pr := model.PR{
			Number:        r.str(model.FieldPRNumber),
			Status:        r.str(model.FieldPRStatus),
			Amount:        r.numPtr(model.FieldPRAmount),
			MaterialGroup: r.strPtr(model.FieldMaterialGroup),
			CostCenter:    r.strPtr(model.FieldCostCenter),
			ItemType:      r.strPtr(model.FieldItemType),
			RawCategory:   r.strPtr(model.FieldCategory),
			Category:      model.CategoryUnknown,
			Raw:           row,
		}
		if v, ok := r.lookup(model.FieldPRDate); ok {
			pr.Date = ParseDate(v, settings.DateFormat)
		}
		prs = append(prs, pr)
	}
	return prs
}

// UnifyPOs renames mapped columns of a raw PO table onto the canonical
// schema.
func UnifyPOs(table *ingest.Table, mapping model.FieldMapping, settings model.Settings) []model.PO {
	if table.Empty() {
		return nil
	}
	pos := make([]model.PO, 0, table.Len())
	for _, row := range table.Rows {
		r := rowReader{row: row, mapping: mapping, table: table}
		po := model.PO{
			Number:         r.str(model.FieldPONumber),
			Status:         r.str(model.FieldPOStatus),
			DeliveryStatus: r.str(model.FieldDeliveryStatus),
			Vendor:         r.strPtr(model.FieldVendor),
			Quantity:       r.numPtr(model.FieldPOQuantity),
			GRNQuantity:    r.numPtr(model.FieldGRNQuantity),
			PRNumber:       r.strPtr(model.FieldPRNumber),
			PRLine:         r.strPtr(model.FieldPRLine),
			RawCategory:    r.strPtr(model.FieldCategory),
			Category:       model.CategoryUnknown,
			Raw:            row,
		}
		if v, ok := r.lookup(model.FieldPODate); ok {
			po.Date = ParseDate(v, settings.DateFormat)
		}
		pos = append(pos, po)
	}
	return pos
}
