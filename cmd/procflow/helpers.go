package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/procflow/procflow/internal/common"
	"github.com/procflow/procflow/internal/engine"
	"github.com/procflow/procflow/internal/ingest"
	"github.com/procflow/procflow/internal/model"
	"github.com/procflow/procflow/internal/storage"
)

// initStore opens the configuration database and brings its schema up to
// date.
func initStore(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/procflow/procflow.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// expandPath expands ~ and environment variables in a file path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}
	return os.ExpandEnv(path)
}

// session bundles everything one recomputation pass needs: the uploaded
// workbook plus the persisted configuration snapshot.
type session struct {
	workbook *ingest.Workbook
	settings model.Settings
	lookup   model.CategoryLookup
	prMap    model.FieldMapping
	poMap    model.FieldMapping
}

// loadSession reads the workbook and the configuration snapshot consulted
// by the pass.
func loadSession(ctx context.Context, store *storage.SQLiteStorage, workbookPath string) (*session, error) {
	wb, err := ingest.ReadWorkbook(workbookPath)
	if err != nil {
		return nil, err
	}
	if wb.PRs == nil && wb.POs == nil {
		return nil, common.NewUserError(common.ErrSheetMissing,
			fmt.Sprintf("workbook %s has neither a %s nor a %s sheet", workbookPath, ingest.SheetPRs, ingest.SheetPOs))
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	lookup, err := store.GetCategoryLookup(ctx)
	if err != nil {
		return nil, err
	}
	prMap, err := store.GetFieldMapping(ctx, model.KindPR)
	if err != nil {
		return nil, err
	}
	poMap, err := store.GetFieldMapping(ctx, model.KindPO)
	if err != nil {
		return nil, err
	}

	return &session{
		workbook: wb,
		settings: settings,
		lookup:   lookup,
		prMap:    prMap,
		poMap:    poMap,
	}, nil
}

// recompute runs the full annotation and metrics pass for a session.
func (s *session) recompute() engine.Result {
	eng := engine.New(s.settings, s.lookup)
	return eng.Recompute(s.workbook.PRs, s.workbook.POs, s.prMap, s.poMap)
}

// parseKind maps a CLI dataset argument onto a DatasetKind.
func parseKind(arg string) (model.DatasetKind, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "pr", "prs":
		return model.KindPR, nil
	case "po", "pos":
		return model.KindPO, nil
	}
	return "", fmt.Errorf("unknown dataset %q (expected prs or pos)", arg)
}
