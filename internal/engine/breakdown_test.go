package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procflow/procflow/internal/model"
)

func TestCategoryBreakdown(t *testing.T) {
	prs := []model.PR{
		{Number: "PR1", Category: model.CategoryMRO},
		{Number: "PR2", Category: model.CategoryMRO},
		{Number: "PR3", Category: model.CategoryServices},
		{Number: "PR4", Category: model.CategoryUnknown},
	}
	pos := []model.PO{
		{Number: "PO1", Category: model.CategoryMRO},
		{Number: "PO2", Category: model.CategoryUnknown},
	}

	want := []model.CategoryCount{
		{Category: model.CategoryMRO, PRs: 2, POs: 1},
		{Category: model.CategoryServices, PRs: 1, POs: 0},
		{Category: model.CategoryCapex, PRs: 0, POs: 0},
		{Category: model.CategoryPCM, PRs: 0, POs: 0},
	}
	assert.Equal(t, want, CategoryBreakdown(prs, pos))
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	counts := CategoryBreakdown(nil, nil)
	assert.Len(t, counts, 4)
	for _, c := range counts {
		assert.Zero(t, c.PRs)
		assert.Zero(t, c.POs)
	}
}

func TestMonthlyPRTrend(t *testing.T) {
	prs := []model.PR{
		{Number: "PR1", Date: date(2024, 1, 5), Category: model.CategoryMRO},
		{Number: "PR2", Date: date(2024, 1, 20), Category: model.CategoryMRO},
		{Number: "PR3", Date: date(2024, 1, 8), Category: model.CategoryServices},
		{Number: "PR4", Date: date(2024, 2, 3), Category: model.CategoryMRO},
		{Number: "PR5", Date: nil, Category: model.CategoryMRO},
		{Number: "PR6", Date: date(2024, 2, 9), Category: model.CategoryUnknown},
	}

	want := []model.TrendPoint{
		{Month: "2024-01", Category: model.CategoryMRO, Count: 2},
		{Month: "2024-01", Category: model.CategoryServices, Count: 1},
		{Month: "2024-02", Category: model.CategoryMRO, Count: 1},
	}
	assert.Equal(t, want, MonthlyPRTrend(prs))
}

func TestMonthlyPOTrendOrdering(t *testing.T) {
	pos := []model.PO{
		{Number: "PO1", Date: date(2024, 3, 1), Category: model.CategoryPCM},
		{Number: "PO2", Date: date(2024, 3, 2), Category: model.CategoryMRO},
		{Number: "PO3", Date: date(2024, 2, 28), Category: model.CategoryCapex},
	}

	// Months ascend; within a month categories follow display order.
	want := []model.TrendPoint{
		{Month: "2024-02", Category: model.CategoryCapex, Count: 1},
		{Month: "2024-03", Category: model.CategoryMRO, Count: 1},
		{Month: "2024-03", Category: model.CategoryPCM, Count: 1},
	}
	assert.Equal(t, want, MonthlyPOTrend(pos))
}
