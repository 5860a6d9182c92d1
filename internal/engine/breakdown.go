package engine

import (
	"sort"
	"time"

	"github.com/procflow/procflow/internal/model"
)

// CategoryBreakdown cross-tabulates PR and PO counts per recognized
// category, in fixed display order. Unknown rows stay in the annotated
// tables and raw counts but are excluded here.
func CategoryBreakdown(prs []model.PR, pos []model.PO) []model.CategoryCount {
	index := make(map[model.Category]int, 4)
	counts := make([]model.CategoryCount, 0, 4)
	for i, c := range model.Categories() {
		index[c] = i
		counts = append(counts, model.CategoryCount{Category: c})
	}
	for _, pr := range prs {
		if i, ok := index[pr.Category]; ok {
			counts[i].PRs++
		}
	}
	for _, po := range pos {
		if i, ok := index[po.Category]; ok {
			counts[i].POs++
		}
	}
	return counts
}

// MonthlyPRTrend counts PRs per (month, category) over rows with a parsed
// date and a recognized category.
func MonthlyPRTrend(prs []model.PR) []model.TrendPoint {
	points := make([]trendInput, 0, len(prs))
	for _, pr := range prs {
		points = append(points, trendInput{date: pr.Date, category: pr.Category})
	}
	return monthlyTrend(points)
}

// MonthlyPOTrend counts POs per (month, category) over rows with a parsed
// date and a recognized category.
func MonthlyPOTrend(pos []model.PO) []model.TrendPoint {
	points := make([]trendInput, 0, len(pos))
	for _, po := range pos {
		points = append(points, trendInput{date: po.Date, category: po.Category})
	}
	return monthlyTrend(points)
}

type trendInput struct {
	date     *time.Time
	category model.Category
}

func monthlyTrend(inputs []trendInput) []model.TrendPoint {
	type key struct {
		month    string
		category model.Category
	}
	counts := make(map[key]int)
	for _, in := range inputs {
		if in.date == nil || !in.category.IsKnown() {
			continue
		}
		counts[key{month: in.date.Format("2006-01"), category: in.category}]++
	}

	order := make(map[model.Category]int, 4)
	for i, c := range model.Categories() {
		order[c] = i
	}

	points := make([]model.TrendPoint, 0, len(counts))
	for k, n := range counts {
		points = append(points, model.TrendPoint{Month: k.month, Category: k.category, Count: n})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Month != points[j].Month {
			return points[i].Month < points[j].Month
		}
		return order[points[i].Category] < order[points[j].Category]
	})
	return points
}
