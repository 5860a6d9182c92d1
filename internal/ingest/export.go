package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"

	"github.com/procflow/procflow/internal/model"
)

// Derived column names attached to annotated exports.
const (
	ColumnIsOpenPR         = "Is_Open_PR"
	ColumnIsOpenDeliveryPO = "Is_Open_Delivery_PO"
)

// ExportAnnotated writes the annotated PR and PO tables to an xlsx file,
// one sheet per dataset. Mapped columns appear under their canonical names
// followed by the derived Category and lifecycle columns; unmapped source
// columns are passed through untouched.
func ExportAnnotated(prs []model.PR, pos []model.PO, prMap, poMap model.FieldMapping, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bar := newRowBar(len(prs) + len(pos))

	prSheet := f.GetSheetName(0)
	if err := f.SetSheetName(prSheet, SheetPRs); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	writePRSheet(f, prs, prMap, bar)

	if _, err := f.NewSheet(SheetPOs); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	writePOSheet(f, pos, poMap, bar)

	_ = bar.Finish()
	return saveWorkbook(f, path)
}

// ExportCategoryLookup writes the category lookup table as a
// Category_Mapping sheet, keys sorted.
func ExportCategoryLookup(lookup model.CategoryLookup, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, SheetCategoryMapping); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	setCell(f, SheetCategoryMapping, 1, 1, ColumnKeyField)
	setCell(f, SheetCategoryMapping, 2, 1, ColumnCategory)

	keys := make([]string, 0, len(lookup))
	for k := range lookup {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		setCell(f, SheetCategoryMapping, 1, i+2, k)
		setCell(f, SheetCategoryMapping, 2, i+2, string(lookup[k]))
	}

	return saveWorkbook(f, path)
}

func writePRSheet(f *excelize.File, prs []model.PR, mapping model.FieldMapping, bar *progressbar.ProgressBar) {
	canonical := mappedFields(model.KindPR, mapping)
	extras := extraColumns(prRaws(prs), mapping, canonical)
	headers := append(append([]string{}, canonical...), model.FieldCategory, ColumnIsOpenPR)
	headers = append(headers, extras...)
	writeHeader(f, SheetPRs, headers)

	for i, pr := range prs {
		r := i + 2
		col := 1
		for _, field := range canonical {
			setCell(f, SheetPRs, col, r, prFieldValue(pr, field))
			col++
		}
		setCell(f, SheetPRs, col, r, string(pr.Category))
		setCell(f, SheetPRs, col+1, r, pr.IsOpen)
		col += 2
		for _, extra := range extras {
			setCell(f, SheetPRs, col, r, pr.Raw[extra])
			col++
		}
		_ = bar.Add(1)
	}
}

func writePOSheet(f *excelize.File, pos []model.PO, mapping model.FieldMapping, bar *progressbar.ProgressBar) {
	canonical := mappedFields(model.KindPO, mapping)
	extras := extraColumns(poRaws(pos), mapping, canonical)
	headers := append(append([]string{}, canonical...), model.FieldCategory, ColumnIsOpenDeliveryPO)
	headers = append(headers, extras...)
	writeHeader(f, SheetPOs, headers)

	for i, po := range pos {
		r := i + 2
		col := 1
		for _, field := range canonical {
			setCell(f, SheetPOs, col, r, poFieldValue(po, field))
			col++
		}
		setCell(f, SheetPOs, col, r, string(po.Category))
		setCell(f, SheetPOs, col+1, r, po.IsOpenDelivery)
		col += 2
		for _, extra := range extras {
			setCell(f, SheetPOs, col, r, po.Raw[extra])
			col++
		}
		_ = bar.Add(1)
	}
}

// mappedFields returns the canonical fields of a kind that have a source
// column, in canonical order. Category is emitted separately as a derived
// column.
func mappedFields(kind model.DatasetKind, mapping model.FieldMapping) []string {
	var fields []string
	for _, field := range model.AllFields(kind) {
		if field == model.FieldCategory {
			continue
		}
		if _, ok := mapping.Column(field); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// extraColumns returns the source columns not consumed by the mapping,
// sorted, excluding names that would collide with emitted headers.
func extraColumns(raws []map[string]string, mapping model.FieldMapping, canonical []string) []string {
	consumed := make(map[string]struct{}, len(mapping))
	for _, col := range mapping {
		if col != "" {
			consumed[col] = struct{}{}
		}
	}
	emitted := map[string]struct{}{
		model.FieldCategory:    {},
		ColumnIsOpenPR:         {},
		ColumnIsOpenDeliveryPO: {},
	}
	for _, field := range canonical {
		emitted[field] = struct{}{}
	}

	seen := make(map[string]struct{})
	var extras []string
	for _, raw := range raws {
		for col := range raw {
			if _, ok := consumed[col]; ok {
				continue
			}
			if _, ok := emitted[col]; ok {
				continue
			}
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			extras = append(extras, col)
		}
	}
	sort.Strings(extras)
	return extras
}

func prFieldValue(pr model.PR, field string) any {
	switch field {
	case model.FieldPRNumber:
		return pr.Number
	case model.FieldPRDate:
		return formatDate(pr.Date)
	case model.FieldPRStatus:
		return pr.Status
	case model.FieldPRAmount:
		return derefFloat(pr.Amount)
	case model.FieldMaterialGroup:
		return derefString(pr.MaterialGroup)
	case model.FieldCostCenter:
		return derefString(pr.CostCenter)
	case model.FieldItemType:
		return derefString(pr.ItemType)
	}
	return ""
}

func poFieldValue(po model.PO, field string) any {
	switch field {
	case model.FieldPONumber:
		return po.Number
	case model.FieldPODate:
		return formatDate(po.Date)
	case model.FieldPOStatus:
		return po.Status
	case model.FieldDeliveryStatus:
		return po.DeliveryStatus
	case model.FieldVendor:
		return derefString(po.Vendor)
	case model.FieldPOQuantity:
		return derefFloat(po.Quantity)
	case model.FieldGRNQuantity:
		return derefFloat(po.GRNQuantity)
	case model.FieldPRNumber:
		return derefString(po.PRNumber)
	case model.FieldPRLine:
		return derefString(po.PRLine)
	}
	return ""
}

func prRaws(prs []model.PR) []map[string]string {
	out := make([]map[string]string, len(prs))
	for i := range prs {
		out[i] = prs[i].Raw
	}
	return out
}

func poRaws(pos []model.PO) []map[string]string {
	out := make([]map[string]string, len(pos))
	for i := range pos {
		out[i] = pos[i].Raw
	}
	return out
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		setCell(f, sheet, i+1, 1, h)
	}
}

func setCell(f *excelize.File, sheet string, col, row int, value any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, value)
}

func newRowBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Exporting rows..."),
	)
}

func saveWorkbook(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
