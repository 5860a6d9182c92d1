// Package ingest reads procurement workbooks into raw tabular structures
// and writes annotated results back out as xlsx.
package ingest

// Table is a raw, immutable tabular dataset: ordered rows keyed by source
// column name. Column order and presence vary per upload.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Has reports whether a column exists in the table.
func (t *Table) Has(column string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Len returns the row count; a nil table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table is nil or has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Values returns the distinct non-empty values of a column, in first-seen
// order. Used to offer filter choices.
func (t *Table) Values(column string) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Rows {
		v := row[column]
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
