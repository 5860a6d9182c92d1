package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/procflow/procflow/internal/model"
)

// RenderMetrics draws the four headline counts as KPI tiles.
func RenderMetrics(m model.Metrics) string {
	tiles := []string{
		kpiTile("Total PRs", m.TotalPRs),
		kpiTile("Total POs", m.TotalPOs),
		kpiTile("Open PRs", m.OpenPRs),
		kpiTile("Open Delivery POs", m.OpenDeliveryPOs),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func kpiTile(title string, value int) string {
	body := SubtleStyle.Render(title) + "\n" + BoldStyle.Render(fmt.Sprintf("%d", value))
	return TileStyle.Render(body)
}

// RenderBreakdown formats the category cross-tab as an aligned table with
// category labels in their configured colors.
func RenderBreakdown(settings model.Settings, counts []model.CategoryCount) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Category Snapshot") + "\n")

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", BoldStyle.Render("Category"), "PRs", "POs")
	for _, c := range counts {
		label := CategoryStyle(settings, c.Category).Render(string(c.Category))
		fmt.Fprintf(w, "%s\t%d\t%d\n", label, c.PRs, c.POs)
	}
	_ = w.Flush()
	return sb.String()
}

// RenderTrend formats a monthly trend series as an aligned table.
func RenderTrend(settings model.Settings, title string, points []model.TrendPoint) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(title) + "\n")
	if len(points) == 0 {
		sb.WriteString(SubtleStyle.Render("No dated rows to chart.") + "\n")
		return sb.String()
	}

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n", BoldStyle.Render("Month"), "Category", "Count")
	for _, p := range points {
		label := CategoryStyle(settings, p.Category).Render(string(p.Category))
		fmt.Fprintf(w, "%s\t%s\t%d\n", p.Month, label, p.Count)
	}
	_ = w.Flush()
	return sb.String()
}

// RenderHealth formats the data-health diagnostics.
func RenderHealth(report model.HealthReport) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Data Health") + "\n")

	renderMissing := func(kind model.DatasetKind, missing []string) {
		if len(missing) == 0 {
			sb.WriteString(fmt.Sprintf("%s: all required fields mapped\n", kind))
			return
		}
		sb.WriteString(WarningStyle.Render(fmt.Sprintf("%s: missing mappings: %s", kind, strings.Join(missing, ", "))) + "\n")
	}
	renderMissing(model.KindPR, report.MissingPRFields)
	renderMissing(model.KindPO, report.MissingPOFields)

	if report.UnknownCategoryPRs > 0 || report.UnknownCategoryPOs > 0 {
		sb.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Unresolved categories: %d PRs, %d POs", report.UnknownCategoryPRs, report.UnknownCategoryPOs)) + "\n")
	} else {
		sb.WriteString("All rows categorized.\n")
	}
	return sb.String()
}
