package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procflow/procflow/internal/model"
)

func strPtr(s string) *string { return &s }

func TestResolverTierOrder(t *testing.T) {
	lookup := model.CategoryLookup{
		"STEEL-01": model.CategoryMRO,
		"CC-100":   model.CategoryServices,
		"IT-SVC":   model.CategoryCapex,
	}
	resolver := NewResolver(lookup)

	tests := []struct {
		name string
		in   CategoryInputs
		want model.Category
	}{
		{
			name: "explicit column wins over lookup",
			in: CategoryInputs{
				Explicit:      strPtr("Capex"),
				MaterialGroup: strPtr("STEEL-01"),
			},
			want: model.CategoryCapex,
		},
		{
			name: "explicit value is trimmed",
			in:   CategoryInputs{Explicit: strPtr("  PCM  ")},
			want: model.CategoryPCM,
		},
		{
			name: "invalid explicit value falls through to lookup",
			in: CategoryInputs{
				Explicit:      strPtr("Miscellaneous"),
				MaterialGroup: strPtr("STEEL-01"),
			},
			want: model.CategoryMRO,
		},
		{
			name: "material group checked before cost center",
			in: CategoryInputs{
				MaterialGroup: strPtr("STEEL-01"),
				CostCenter:    strPtr("CC-100"),
			},
			want: model.CategoryMRO,
		},
		{
			name: "cost center checked before item type",
			in: CategoryInputs{
				CostCenter: strPtr("CC-100"),
				ItemType:   strPtr("IT-SVC"),
			},
			want: model.CategoryServices,
		},
		{
			name: "item type is the last lookup tier",
			in:   CategoryInputs{ItemType: strPtr("IT-SVC")},
			want: model.CategoryCapex,
		},
		{
			name: "lookup key is trimmed",
			in:   CategoryInputs{MaterialGroup: strPtr(" STEEL-01 ")},
			want: model.CategoryMRO,
		},
		{
			name: "no tier matches",
			in:   CategoryInputs{MaterialGroup: strPtr("UNSEEN")},
			want: model.CategoryUnknown,
		},
		{
			name: "all fields absent",
			in:   CategoryInputs{},
			want: model.CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(tt.in))
		})
	}
}

func TestResolverOnlyKnownLabels(t *testing.T) {
	// A lookup table polluted with an invalid label must never leak it.
	lookup := model.CategoryLookup{"BAD": "Garbage", "GOOD": model.CategoryPCM}
	resolver := NewResolver(lookup)

	assert.Equal(t, model.CategoryUnknown, resolver.Resolve(CategoryInputs{MaterialGroup: strPtr("BAD")}))
	assert.Equal(t, model.CategoryPCM, resolver.Resolve(CategoryInputs{MaterialGroup: strPtr("GOOD")}))
}

func TestResolverInvalidExplicitThenInvalidLookup(t *testing.T) {
	lookup := model.CategoryLookup{"K": "NotALabel"}
	resolver := NewResolver(lookup)

	got := resolver.Resolve(CategoryInputs{
		Explicit:      strPtr("Stationery"),
		MaterialGroup: strPtr("K"),
	})
	assert.Equal(t, model.CategoryUnknown, got)
}

func TestResolverNilLookup(t *testing.T) {
	resolver := NewResolver(nil)

	assert.Equal(t, model.CategoryMRO, resolver.Resolve(CategoryInputs{Explicit: strPtr("MRO")}))
	assert.Equal(t, model.CategoryUnknown, resolver.Resolve(CategoryInputs{MaterialGroup: strPtr("STEEL-01")}))
}
