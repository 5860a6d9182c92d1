package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procflow/procflow/internal/engine"
	"github.com/procflow/procflow/internal/ingest"
)

func exportCmd() *cobra.Command {
	var (
		flags  filterFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <workbook.xlsx>",
		Short: "Export annotated PR and PO tables to xlsx",
		Long: `Ingest a workbook, annotate every row with its derived category and
lifecycle flag, optionally narrow with filter flags, and write the result
as an xlsx workbook with PRs and POs sheets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sess, err := loadSession(ctx, store, args[0])
			if err != nil {
				return err
			}

			filter, err := flags.build(sess.settings)
			if err != nil {
				return err
			}

			result := sess.recompute()
			prs := engine.FilterPRs(result.PRs, filter)
			pos := engine.FilterPOs(result.POs, filter)

			if err := ingest.ExportAnnotated(prs, pos, sess.prMap, sess.poMap, output); err != nil {
				return err
			}
			fmt.Printf("Exported %d PRs and %d POs to %s\n", len(prs), len(pos), output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "procflow_export.xlsx", "output xlsx path")
	return cmd
}
