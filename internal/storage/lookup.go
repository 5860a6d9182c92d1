package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/procflow/procflow/internal/model"
)

// GetCategoryLookup loads the whole category lookup table.
func (s *SQLiteStorage) GetCategoryLookup(ctx context.Context) (model.CategoryLookup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, category FROM category_lookup`)
	if err != nil {
		return nil, fmt.Errorf("failed to get category lookup: %w", err)
	}
	defer func() { _ = rows.Close() }()

	lookup := make(model.CategoryLookup)
	for rows.Next() {
		var key, category string
		if err := rows.Scan(&key, &category); err != nil {
			return nil, fmt.Errorf("failed to scan category lookup: %w", err)
		}
		if cat, ok := model.ParseCategory(category); ok {
			lookup[key] = cat
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category lookup: %w", err)
	}
	return lookup, nil
}

// SaveCategoryLookup replaces the whole lookup table. Entries with empty
// keys or labels outside the four categories are dropped from the write
// with a warning, never propagated as an error.
func (s *SQLiteStorage) SaveCategoryLookup(ctx context.Context, lookup model.CategoryLookup) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM category_lookup`); err != nil {
			return fmt.Errorf("failed to clear category lookup: %w", err)
		}
		for key, category := range lookup {
			if !insertLookupEntry(ctx, tx, key, category) {
				continue
			}
		}
		return nil
	})
}

// MergeCategoryLookup upserts entries into the existing lookup table,
// implementing import-from-sheet semantics: existing keys are updated,
// invalid entries skipped.
func (s *SQLiteStorage) MergeCategoryLookup(ctx context.Context, entries model.CategoryLookup) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	applied := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for key, category := range entries {
			if insertLookupEntry(ctx, tx, key, category) {
				applied++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// insertLookupEntry writes one entry, reporting whether it was accepted.
// Rejections are logged and swallowed per the configuration-write policy.
func insertLookupEntry(ctx context.Context, tx *sql.Tx, key string, category model.Category) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	cat, ok := model.ParseCategory(string(category))
	if !ok {
		slog.Warn("Dropping category lookup entry with invalid label", "key", key, "category", category)
		return false
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO category_lookup (key, category, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET category = excluded.category, updated_at = CURRENT_TIMESTAMP
	`, key, string(cat)); err != nil {
		slog.Warn("Failed to write category lookup entry", "key", key, "error", err)
		return false
	}
	return true
}

// DeleteCategoryKey removes one key from the lookup table.
func (s *SQLiteStorage) DeleteCategoryKey(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM category_lookup WHERE key = ?`, strings.TrimSpace(key)); err != nil {
			return fmt.Errorf("failed to delete category key: %w", err)
		}
		return nil
	})
}
