package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/procflow/procflow/internal/cli"
	"github.com/procflow/procflow/internal/model"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage date-format and open-status settings",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())
	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Settings"))
			fmt.Printf("Date format: %s\n", settings.DateFormat)
			fmt.Printf("PR open statuses: %s\n", strings.Join(settings.PROpenStatuses, ", "))
			fmt.Printf("PO open delivery statuses: %s\n", strings.Join(settings.POOpenDeliveryStatuses, ", "))
			for _, c := range model.Categories() {
				label := cli.CategoryStyle(settings, c).Render(string(c))
				fmt.Printf("%s: %s\n", label, settings.ColorFor(c))
			}
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	var (
		dateFormat string
		prOpen     []string
		poOpen     []string
		colors     []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		Long: `Update one or more settings. Unspecified flags keep their current
values; the whole settings object is saved atomically.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("date-format") {
				mode, ok := model.ParseDateFormat(dateFormat)
				if !ok {
					return fmt.Errorf("date format must be auto, dd-mm-yyyy or yyyy-mm-dd; got %q", dateFormat)
				}
				settings.DateFormat = mode
			}
			if cmd.Flags().Changed("pr-open") {
				settings.PROpenStatuses = trimAll(prOpen)
			}
			if cmd.Flags().Changed("po-open") {
				settings.POOpenDeliveryStatuses = trimAll(poOpen)
			}
			for _, pair := range colors {
				name, color, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("expected Category=#RRGGBB, got %q", pair)
				}
				cat, valid := model.ParseCategory(name)
				if !valid {
					return fmt.Errorf("unknown category %q", name)
				}
				settings.CategoryColors[cat] = strings.TrimSpace(color)
			}

			if err := store.SaveSettings(ctx, settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			fmt.Println("Settings saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFormat, "date-format", "", "date parsing mode (auto, dd-mm-yyyy, yyyy-mm-dd)")
	cmd.Flags().StringSliceVar(&prOpen, "pr-open", nil, "PR statuses considered open")
	cmd.Flags().StringSliceVar(&poOpen, "po-open", nil, "PO delivery statuses considered open")
	cmd.Flags().StringSliceVar(&colors, "color", nil, "category display color (Category=#RRGGBB)")
	return cmd
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
