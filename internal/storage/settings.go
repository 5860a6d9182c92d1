package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/procflow/procflow/internal/model"
)

// GetSettings loads the persisted settings, falling back to defaults when
// nothing has been saved yet.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return model.Settings{}, err
	}

	var (
		dateFormat string
		prOpen     string
		poOpen     string
		colors     string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT date_format, pr_open_statuses, po_open_delivery_statuses, category_colors
		FROM settings WHERE id = 1
	`).Scan(&dateFormat, &prOpen, &poOpen, &colors)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := model.DefaultSettings()
	if mode, ok := model.ParseDateFormat(dateFormat); ok {
		settings.DateFormat = mode
	}
	if err := json.Unmarshal([]byte(prOpen), &settings.PROpenStatuses); err != nil {
		return model.Settings{}, fmt.Errorf("failed to decode PR open statuses: %w", err)
	}
	if err := json.Unmarshal([]byte(poOpen), &settings.POOpenDeliveryStatuses); err != nil {
		return model.Settings{}, fmt.Errorf("failed to decode PO open delivery statuses: %w", err)
	}
	if err := json.Unmarshal([]byte(colors), &settings.CategoryColors); err != nil {
		return model.Settings{}, fmt.Errorf("failed to decode category colors: %w", err)
	}
	return settings, nil
}

// SaveSettings overwrites the whole settings object atomically.
func (s *SQLiteStorage) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, ok := model.ParseDateFormat(string(settings.DateFormat)); !ok {
		return fmt.Errorf("%w: date format %q", ErrInvalidSettings, settings.DateFormat)
	}

	prOpen, err := json.Marshal(settings.PROpenStatuses)
	if err != nil {
		return fmt.Errorf("failed to encode PR open statuses: %w", err)
	}
	poOpen, err := json.Marshal(settings.POOpenDeliveryStatuses)
	if err != nil {
		return fmt.Errorf("failed to encode PO open delivery statuses: %w", err)
	}
	colors, err := json.Marshal(settings.CategoryColors)
	if err != nil {
		return fmt.Errorf("failed to encode category colors: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO settings (id, date_format, pr_open_statuses, po_open_delivery_statuses, category_colors, updated_at)
			VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET
				date_format = excluded.date_format,
				pr_open_statuses = excluded.pr_open_statuses,
				po_open_delivery_statuses = excluded.po_open_delivery_statuses,
				category_colors = excluded.category_colors,
				updated_at = CURRENT_TIMESTAMP
		`, string(settings.DateFormat), string(prOpen), string(poOpen), string(colors))
		if err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		return nil
	})
}
