package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/procflow/procflow/internal/cli"
	"github.com/procflow/procflow/internal/model"
)

func mapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Manage canonical field mappings",
		Long:  `Inspect and edit the per-dataset mapping from canonical fields to source spreadsheet columns.`,
	}

	cmd.AddCommand(listMappingCmd())
	cmd.AddCommand(setMappingCmd())
	cmd.AddCommand(clearMappingCmd())
	return cmd
}

func listMappingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <prs|pos>",
		Short: "Show the field mapping for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mapping, err := store.GetFieldMapping(ctx, kind)
			if err != nil {
				return fmt.Errorf("failed to get field mapping: %w", err)
			}

			required := make(map[string]struct{})
			for _, f := range model.RequiredFields(kind) {
				required[f] = struct{}{}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\t%s\n", cli.BoldStyle.Render("Field"), "Source column", "")
			for _, field := range model.AllFields(kind) {
				col, ok := mapping.Column(field)
				note := ""
				if !ok {
					col = cli.SubtleStyle.Render("(not mapped)")
					if _, req := required[field]; req {
						note = cli.WarningStyle.Render("required")
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", field, col, note)
			}
			return nil
		},
	}
}

func setMappingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <prs|pos> <Field=Column> [Field=Column...]",
		Short: "Assign source columns to canonical fields",
		Long: `Update mapping entries for a dataset. An empty column ("Field=") clears
that field. The whole mapping is saved atomically.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			mapping, err := store.GetFieldMapping(ctx, kind)
			if err != nil {
				return fmt.Errorf("failed to get field mapping: %w", err)
			}

			known := make(map[string]struct{})
			for _, f := range model.AllFields(kind) {
				known[f] = struct{}{}
			}

			for _, pair := range args[1:] {
				field, column, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("expected Field=Column, got %q", pair)
				}
				field = strings.TrimSpace(field)
				if _, exists := known[field]; !exists {
					return fmt.Errorf("unknown canonical field %q for %s", field, kind)
				}
				column = strings.TrimSpace(column)
				if column == "" {
					delete(mapping, field)
				} else {
					mapping[field] = column
				}
			}

			if err := store.SaveFieldMapping(ctx, kind, mapping); err != nil {
				return fmt.Errorf("failed to save field mapping: %w", err)
			}
			fmt.Printf("Saved %s mapping (%d fields mapped)\n", kind, len(mapping))
			return nil
		},
	}
}

func clearMappingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <prs|pos>",
		Short: "Remove the field mapping for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveFieldMapping(ctx, kind, model.FieldMapping{}); err != nil {
				return fmt.Errorf("failed to clear field mapping: %w", err)
			}
			fmt.Printf("Cleared %s mapping\n", kind)
			return nil
		},
	}
}
