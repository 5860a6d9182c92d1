package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/procflow/procflow/internal/cli"
	"github.com/procflow/procflow/internal/ingest"
	"github.com/procflow/procflow/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category lookup table",
		Long: `List, edit, import and export the lookup table that maps Material_Group,
Cost_Center and Item_Type values to MRO/Services/Capex/PCM.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(setCategoryCmd())
	cmd.AddCommand(removeCategoryCmd())
	cmd.AddCommand(importCategoriesCmd())
	cmd.AddCommand(exportCategoriesCmd())
	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all lookup entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lookup, err := store.GetCategoryLookup(ctx)
			if err != nil {
				return fmt.Errorf("failed to get category lookup: %w", err)
			}
			if len(lookup) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No lookup entries. Use 'procflow categories set' or 'procflow categories import'."))
				return nil
			}

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(lookup))
			for k := range lookup {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()
			fmt.Fprintf(w, "%s\t%s\n", cli.BoldStyle.Render("Key"), "Category")
			for _, k := range keys {
				label := cli.CategoryStyle(settings, lookup[k]).Render(string(lookup[k]))
				fmt.Fprintf(w, "%s\t%s\n", k, label)
			}
			return nil
		},
	}
}

func setCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <category>",
		Short: "Map a key value to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cat, ok := model.ParseCategory(args[1])
			if !ok {
				return fmt.Errorf("category must be one of MRO, Services, Capex, PCM; got %q", args[1])
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			applied, err := store.MergeCategoryLookup(ctx, model.CategoryLookup{args[0]: cat})
			if err != nil {
				return fmt.Errorf("failed to save lookup entry: %w", err)
			}
			if applied == 0 {
				return fmt.Errorf("entry %q was rejected", args[0])
			}
			fmt.Printf("%s -> %s\n", strings.TrimSpace(args[0]), cat)
			return nil
		},
	}
}

func removeCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a lookup entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCategoryKey(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to remove lookup entry: %w", err)
			}
			fmt.Printf("Removed %q\n", args[0])
			return nil
		},
	}
}

func importCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Import lookup entries from a Category_Mapping sheet",
		Long: `Read the Category_Mapping sheet (columns Key_Field and Category) and
merge its rows into the persisted lookup table. Rows with labels outside
the four categories are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			wb, err := ingest.ReadWorkbook(args[0])
			if err != nil {
				return err
			}
			if wb.CategoryMapping.Empty() {
				return fmt.Errorf("no %s sheet found in %s", ingest.SheetCategoryMapping, args[0])
			}

			entries := make(model.CategoryLookup)
			skipped := 0
			for _, row := range wb.CategoryMapping.Rows {
				key := strings.TrimSpace(row[ingest.ColumnKeyField])
				cat, ok := model.ParseCategory(row[ingest.ColumnCategory])
				if key == "" || !ok {
					skipped++
					continue
				}
				entries[key] = cat
			}

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			applied, err := store.MergeCategoryLookup(ctx, entries)
			if err != nil {
				return fmt.Errorf("failed to import lookup entries: %w", err)
			}
			fmt.Printf("Imported %d entries (%d skipped)\n", applied, skipped)
			return nil
		},
	}
}

func exportCategoriesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the lookup table as a Category_Mapping workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lookup, err := store.GetCategoryLookup(ctx)
			if err != nil {
				return fmt.Errorf("failed to get category lookup: %w", err)
			}

			if err := ingest.ExportCategoryLookup(lookup, output); err != nil {
				return err
			}
			fmt.Printf("Exported %d entries to %s\n", len(lookup), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "Category_Mapping.xlsx", "output xlsx path")
	return cmd
}
