package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names recognized in an uploaded workbook.
const (
	SheetPRs             = "PRs"
	SheetPOs             = "POs"
	SheetCategoryMapping = "Category_Mapping"
)

// Columns expected on the category mapping sheet.
const (
	ColumnKeyField = "Key_Field"
	ColumnCategory = "Category"
)

// Workbook holds the tables extracted from one upload. A sheet that is
// missing from the file yields a nil table, never an error.
type Workbook struct {
	PRs             *Table
	POs             *Table
	CategoryMapping *Table
}

// ReadWorkbook opens an xlsx file and extracts the PRs, POs and optional
// Category_Mapping sheets.
func ReadWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readSheets(f)
}

// ReadWorkbookFrom extracts the same sheets from an already-open reader.
func ReadWorkbookFrom(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readSheets(f)
}

func readSheets(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}
	for _, sheet := range f.GetSheetList() {
		table, err := readTable(f, sheet)
		if err != nil {
			slog.Warn("Skipping unreadable sheet", "sheet", sheet, "error", err)
			continue
		}
		switch sheet {
		case SheetPRs:
			wb.PRs = table
		case SheetPOs:
			wb.POs = table
		case SheetCategoryMapping:
			wb.CategoryMapping = table
		}
	}
	return wb, nil
}

// readTable converts one sheet into a Table. The first row supplies column
// names, trimmed; columns with empty headers are dropped. Short rows are
// padded with empty values.
func readTable(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	header := rows[0]
	columns := make([]string, 0, len(header))
	indexes := make([]int, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		columns = append(columns, name)
		indexes = append(indexes, i)
	}

	table := &Table{Columns: columns, Rows: make([]map[string]string, 0, len(rows)-1)}
	for _, cells := range rows[1:] {
		row := make(map[string]string, len(columns))
		empty := true
		for j, col := range columns {
			var v string
			if idx := indexes[j]; idx < len(cells) {
				v = strings.TrimSpace(cells[idx])
			}
			row[col] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
