package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procflow/procflow/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))

	var version int
	err := store.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestGetSettingsDefaults(t *testing.T) {
	store := createTestStorage(t)

	settings, err := store.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSettingsRoundtrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.DateFormat = model.DateFormatISO
	settings.PROpenStatuses = []string{"Open", "On Hold"}
	settings.CategoryColors[model.CategoryMRO] = "#112233"

	require.NoError(t, store.SaveSettings(ctx, settings))

	got, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, got)

	// A second save overwrites the single row.
	settings.DateFormat = model.DateFormatDayFirst
	require.NoError(t, store.SaveSettings(ctx, settings))
	got, err = store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DateFormatDayFirst, got.DateFormat)
}

func TestSaveSettingsRejectsInvalidDateFormat(t *testing.T) {
	store := createTestStorage(t)

	settings := model.DefaultSettings()
	settings.DateFormat = "mm-dd-yyyy"
	err := store.SaveSettings(context.Background(), settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestFieldMappingRoundtrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	mapping := model.FieldMapping{
		model.FieldPRNumber: "Req No",
		model.FieldPRStatus: "State",
	}
	require.NoError(t, store.SaveFieldMapping(ctx, model.KindPR, mapping))

	got, err := store.GetFieldMapping(ctx, model.KindPR)
	require.NoError(t, err)
	assert.Equal(t, mapping, got)

	// PO mapping is independent of the PR mapping.
	got, err = store.GetFieldMapping(ctx, model.KindPO)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveFieldMappingReplacesWholeObject(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := model.FieldMapping{
		model.FieldPRNumber: "Req No",
		model.FieldPRDate:   "Req Date",
	}
	require.NoError(t, store.SaveFieldMapping(ctx, model.KindPR, first))

	second := model.FieldMapping{model.FieldPRNumber: "Requisition"}
	require.NoError(t, store.SaveFieldMapping(ctx, model.KindPR, second))

	got, err := store.GetFieldMapping(ctx, model.KindPR)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestSaveFieldMappingDropsUnknownAndEmpty(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	mapping := model.FieldMapping{
		model.FieldPRNumber: "Req No",
		"Not_A_Field":       "Somewhere",
		model.FieldPRDate:   "",
	}
	require.NoError(t, store.SaveFieldMapping(ctx, model.KindPR, mapping))

	got, err := store.GetFieldMapping(ctx, model.KindPR)
	require.NoError(t, err)
	assert.Equal(t, model.FieldMapping{model.FieldPRNumber: "Req No"}, got)
}

func TestFieldMappingInvalidKind(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetFieldMapping(context.Background(), "invoices")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestCategoryLookupRoundtrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	lookup := model.CategoryLookup{
		"STEEL-01": model.CategoryMRO,
		"CC-100":   model.CategoryServices,
	}
	require.NoError(t, store.SaveCategoryLookup(ctx, lookup))

	got, err := store.GetCategoryLookup(ctx)
	require.NoError(t, err)
	assert.Equal(t, lookup, got)
}

func TestSaveCategoryLookupDropsInvalidEntries(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	lookup := model.CategoryLookup{
		"GOOD": model.CategoryCapex,
		"BAD":  "Garbage",
		"  ":   model.CategoryMRO,
	}
	require.NoError(t, store.SaveCategoryLookup(ctx, lookup))

	got, err := store.GetCategoryLookup(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLookup{"GOOD": model.CategoryCapex}, got)
}

func TestMergeCategoryLookup(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCategoryLookup(ctx, model.CategoryLookup{
		"A": model.CategoryMRO,
		"B": model.CategoryServices,
	}))

	applied, err := store.MergeCategoryLookup(ctx, model.CategoryLookup{
		"B":   model.CategoryCapex,
		"C":   model.CategoryPCM,
		"BAD": "Garbage",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	got, err := store.GetCategoryLookup(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryLookup{
		"A": model.CategoryMRO,
		"B": model.CategoryCapex,
		"C": model.CategoryPCM,
	}, got)
}

func TestDeleteCategoryKey(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCategoryLookup(ctx, model.CategoryLookup{"A": model.CategoryMRO}))
	require.NoError(t, store.DeleteCategoryKey(ctx, "A"))

	got, err := store.GetCategoryLookup(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Deleting an absent key is not an error.
	require.NoError(t, store.DeleteCategoryKey(ctx, "A"))

	err = store.DeleteCategoryKey(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}
