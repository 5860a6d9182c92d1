package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/procflow/procflow/internal/cli"
	"github.com/procflow/procflow/internal/engine"
	"github.com/procflow/procflow/internal/mapper"
	"github.com/procflow/procflow/internal/model"
)

// filterFlags collects the raw filter arguments shared by report and
// export.
type filterFlags struct {
	prFrom     string
	prTo       string
	poFrom     string
	poTo       string
	categories []string
	vendors    []string
	buyers     []string
	prStatuses []string
	poStatuses []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prFrom, "from", "", "PR date range start (inclusive)")
	cmd.Flags().StringVar(&f.prTo, "to", "", "PR date range end (inclusive)")
	cmd.Flags().StringVar(&f.poFrom, "po-from", "", "PO date range start (inclusive)")
	cmd.Flags().StringVar(&f.poTo, "po-to", "", "PO date range end (inclusive)")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "restrict to categories (MRO, Services, Capex, PCM)")
	cmd.Flags().StringSliceVar(&f.vendors, "vendor", nil, "restrict POs to vendors")
	cmd.Flags().StringSliceVar(&f.buyers, "buyer", nil, "restrict PRs to buyers")
	cmd.Flags().StringSliceVar(&f.prStatuses, "pr-status", nil, "restrict PRs to statuses")
	cmd.Flags().StringSliceVar(&f.poStatuses, "po-status", nil, "restrict POs to statuses")
}

// build converts the raw arguments into filter predicates. Date arguments
// are parsed under the configured date format; an unparseable bound is
// rejected rather than silently ignored.
func (f *filterFlags) build(settings model.Settings) (engine.Filter, error) {
	filter := engine.Filter{
		Vendors:    f.vendors,
		Buyers:     f.buyers,
		PRStatuses: f.prStatuses,
		POStatuses: f.poStatuses,
	}

	parseBound := func(flag, value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		t := mapper.ParseDate(value, settings.DateFormat)
		if t == nil {
			return nil, fmt.Errorf("cannot parse --%s date %q", flag, value)
		}
		return t, nil
	}

	var err error
	if filter.PRDateFrom, err = parseBound("from", f.prFrom); err != nil {
		return engine.Filter{}, err
	}
	if filter.PRDateTo, err = parseBound("to", f.prTo); err != nil {
		return engine.Filter{}, err
	}
	if filter.PODateFrom, err = parseBound("po-from", f.poFrom); err != nil {
		return engine.Filter{}, err
	}
	if filter.PODateTo, err = parseBound("po-to", f.poTo); err != nil {
		return engine.Filter{}, err
	}

	for _, c := range f.categories {
		cat, ok := model.ParseCategory(c)
		if !ok {
			return engine.Filter{}, fmt.Errorf("unknown category %q", c)
		}
		filter.Categories = append(filter.Categories, cat)
	}

	return filter, nil
}

func reportCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "report <workbook.xlsx>",
		Short: "Compute and display metrics, breakdowns and trends",
		Long: `Ingest a workbook, apply the persisted field mappings and settings,
classify every PR and PO, and display headline metrics, the category
cross-tab and monthly trends. Filter flags narrow the view before
re-aggregation.`,
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

			fmt.Println(cli.RenderMetrics(engine.Metrics(prs, pos)))
			fmt.Println()
			fmt.Println(cli.RenderBreakdown(sess.settings, engine.CategoryBreakdown(prs, pos)))
			fmt.Println(cli.RenderTrend(sess.settings, "Monthly PR Trend", engine.MonthlyPRTrend(prs)))
			fmt.Println(cli.RenderTrend(sess.settings, "Monthly PO Trend", engine.MonthlyPOTrend(pos)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
