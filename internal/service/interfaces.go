// Package service defines the interfaces between the CLI layer and its
// collaborators.
package service

import (
	"context"

	"github.com/procflow/procflow/internal/model"
)

// ConfigStore persists the user-owned configuration: settings, per-kind
// field mappings and the category lookup table. Saves are whole-object
// overwrites; there is no field-level mutation.
type ConfigStore interface {
	GetSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error

	GetFieldMapping(ctx context.Context, kind model.DatasetKind) (model.FieldMapping, error)
	SaveFieldMapping(ctx context.Context, kind model.DatasetKind, mapping model.FieldMapping) error

	GetCategoryLookup(ctx context.Context) (model.CategoryLookup, error)
	SaveCategoryLookup(ctx context.Context, lookup model.CategoryLookup) error
	MergeCategoryLookup(ctx context.Context, entries model.CategoryLookup) (int, error)
	DeleteCategoryKey(ctx context.Context, key string) error

	Close() error
}
