package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procflow/procflow/internal/model"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func samplePRs() []model.PR {
	return []model.PR{
		{Number: "PR1", Status: "Open", Date: date(2024, 1, 10), Category: model.CategoryMRO,
			Raw: map[string]string{"Buyer": "Alice"}},
		{Number: "PR2", Status: "Closed", Date: date(2024, 2, 12), Category: model.CategoryServices,
			Raw: map[string]string{"Buyer": "Bob"}},
		{Number: "PR3", Status: "Open", Date: nil, Category: model.CategoryMRO,
			Raw: map[string]string{"Buyer": "Alice"}},
	}
}

func samplePOs() []model.PO {
	return []model.PO{
		{Number: "PO1", Status: "Released", Date: date(2024, 1, 20), Category: model.CategoryMRO, Vendor: strPtr("Acme")},
		{Number: "PO2", Status: "Closed", Date: date(2024, 3, 5), Category: model.CategoryCapex, Vendor: strPtr("Globex")},
		{Number: "PO3", Status: "Released", Date: date(2024, 3, 6), Category: model.CategoryMRO},
	}
}

func TestFilterEmptyPassesEverything(t *testing.T) {
	f := Filter{}
	require.True(t, f.IsEmpty())

	prs := samplePRs()
	pos := samplePOs()
	assert.Equal(t, prs, FilterPRs(prs, f))
	assert.Equal(t, pos, FilterPOs(pos, f))
}

func TestFilterPRs(t *testing.T) {
	prs := samplePRs()

	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{
			name: "by category",
			f:    Filter{Categories: []model.Category{model.CategoryMRO}},
			want: []string{"PR1", "PR3"},
		},
		{
			name: "by status case-insensitive",
			f:    Filter{PRStatuses: []string{"open"}},
			want: []string{"PR1", "PR3"},
		},
		{
			name: "by buyer from the raw row",
			f:    Filter{Buyers: []string{"Alice"}},
			want: []string{"PR1", "PR3"},
		},
		{
			name: "date range drops null dates",
			f:    Filter{PRDateFrom: date(2024, 1, 1), PRDateTo: date(2024, 12, 31)},
			want: []string{"PR1", "PR2"},
		},
		{
			name: "date bounds are inclusive",
			f:    Filter{PRDateFrom: date(2024, 1, 10), PRDateTo: date(2024, 2, 12)},
			want: []string{"PR1", "PR2"},
		},
		{
			name: "predicates combine with AND",
			f: Filter{
				Categories: []model.Category{model.CategoryMRO},
				PRDateFrom: date(2024, 1, 1),
			},
			want: []string{"PR1"},
		},
		{
			name: "values within a predicate combine with OR",
			f:    Filter{Buyers: []string{"Alice", "Bob"}},
			want: []string{"PR1", "PR2", "PR3"},
		},
		{
			name: "nothing matches",
			f:    Filter{PRStatuses: []string{"Rejected"}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPRs(prs, tt.f)
			numbers := make([]string, 0, len(got))
			for _, pr := range got {
				numbers = append(numbers, pr.Number)
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestFilterPOs(t *testing.T) {
	pos := samplePOs()

	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{
			name: "by vendor excludes nil vendors",
			f:    Filter{Vendors: []string{"acme"}},
			want: []string{"PO1"},
		},
		{
			name: "by status",
			f:    Filter{POStatuses: []string{"Released"}},
			want: []string{"PO1", "PO3"},
		},
		{
			name: "by category and date",
			f: Filter{
				Categories: []model.Category{model.CategoryMRO},
				PODateFrom: date(2024, 2, 1),
			},
			want: []string{"PO3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterPOs(pos, tt.f)
			numbers := make([]string, 0, len(got))
			for _, po := range got {
				numbers = append(numbers, po.Number)
			}
			assert.Equal(t, tt.want, numbers)
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	prs := samplePRs()
	FilterPRs(prs, Filter{Categories: []model.Category{model.CategoryServices}})
	assert.Equal(t, samplePRs(), prs)
}
