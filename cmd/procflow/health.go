package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procflow/procflow/internal/cli"
	"github.com/procflow/procflow/internal/engine"
	"github.com/procflow/procflow/internal/model"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health <workbook.xlsx>",
		Short: "Inspect mapping coverage and unresolved categories",
		Long: `Report the required canonical fields without a mapped source column for
each dataset, and the rows no category resolution tier could classify.
Diagnostics only: none of these conditions block aggregation.`,
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

			result := sess.recompute()
			report := engine.Health(sess.prMap, sess.poMap, result.PRs, result.POs)
			fmt.Println(cli.RenderHealth(report))

			if sess.workbook.CategoryMapping.Empty() {
				fmt.Println(cli.SubtleStyle.Render("No Category_Mapping sheet found; manage the lookup with 'procflow categories'."))
			} else {
				fmt.Printf("Category_Mapping sheet present with %d rows.\n", sess.workbook.CategoryMapping.Len())
			}

			printColumns := func(kind model.DatasetKind, columns []string) {
				if len(columns) == 0 {
					fmt.Printf("%s sheet: not found\n", kind)
					return
				}
				fmt.Printf("%s columns: %v\n", kind, columns)
			}
			if sess.workbook.PRs != nil {
				printColumns(model.KindPR, sess.workbook.PRs.Columns)
			} else {
				printColumns(model.KindPR, nil)
			}
			if sess.workbook.POs != nil {
				printColumns(model.KindPO, sess.workbook.POs.Columns)
			} else {
				printColumns(model.KindPO, nil)
			}
			return nil
		},
	}
}
