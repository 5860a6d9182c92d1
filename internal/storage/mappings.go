package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/procflow/procflow/internal/model"
)

// GetFieldMapping loads the persisted field mapping for a dataset kind.
// Only canonical fields of that kind are honored; an empty mapping is
// returned when nothing has been saved.
func (s *SQLiteStorage) GetFieldMapping(ctx context.Context, kind model.DatasetKind) (model.FieldMapping, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT field, raw_column FROM field_mappings WHERE kind = ?
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to get field mapping: %w", err)
	}
	defer func() { _ = rows.Close() }()

	known := make(map[string]struct{})
	for _, f := range model.AllFields(kind) {
		known[f] = struct{}{}
	}

	mapping := make(model.FieldMapping)
	for rows.Next() {
		var field, rawColumn string
		if err := rows.Scan(&field, &rawColumn); err != nil {
			return nil, fmt.Errorf("failed to scan field mapping: %w", err)
		}
		if _, ok := known[field]; !ok {
			continue
		}
		if rawColumn != "" {
			mapping[field] = rawColumn
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read field mappings: %w", err)
	}
	return mapping, nil
}

// SaveFieldMapping replaces the whole mapping for a dataset kind. Entries
// for unknown canonical fields and unmapped entries are dropped rather
// than rejected.
func (s *SQLiteStorage) SaveFieldMapping(ctx context.Context, kind model.DatasetKind, mapping model.FieldMapping) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKind(kind); err != nil {
		return err
	}

	known := make(map[string]struct{})
	for _, f := range model.AllFields(kind) {
		known[f] = struct{}{}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM field_mappings WHERE kind = ?`, string(kind)); err != nil {
			return fmt.Errorf("failed to clear field mapping: %w", err)
		}
		for field, rawColumn := range mapping {
			if rawColumn == "" {
				continue
			}
			if _, ok := known[field]; !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO field_mappings (kind, field, raw_column) VALUES (?, ?, ?)
			`, string(kind), field, rawColumn); err != nil {
				return fmt.Errorf("failed to save field mapping: %w", err)
			}
		}
		return nil
	})
}
