package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procflow/procflow/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func testLifecycle() *Lifecycle {
	return NewLifecycle(model.DefaultSettings())
}

func TestLinkedPRNumbers(t *testing.T) {
	pos := []model.PO{
		{Number: "PO1", PRNumber: strPtr(" PR1 ")},
		{Number: "PO2", PRNumber: strPtr("PR2")},
		{Number: "PO3"},
		{Number: "PO4", PRNumber: strPtr("  ")},
	}

	linked := LinkedPRNumbers(pos)
	assert.Len(t, linked, 2)
	assert.Contains(t, linked, "PR1")
	assert.Contains(t, linked, "PR2")
}

func TestIsOpenPR(t *testing.T) {
	linked := map[string]struct{}{"PR1": {}, "PR2": {}}

	tests := []struct {
		name string
		pr   model.PR
		want bool
	}{
		{
			name: "closed and linked is not open",
			pr:   model.PR{Number: "PR1", Status: "Closed"},
			want: false,
		},
		{
			name: "closed but unlinked is open",
			pr:   model.PR{Number: "PR9", Status: "Closed"},
			want: true,
		},
		{
			name: "non-closed status is open even when linked",
			pr:   model.PR{Number: "PR2", Status: "In Progress"},
			want: true,
		},
		{
			name: "status comparison is case-insensitive",
			pr:   model.PR{Number: "PR1", Status: "CLOSED"},
			want: false,
		},
		{
			name: "number is trimmed before linkage check",
			pr:   model.PR{Number: " PR1 ", Status: "Closed"},
			want: false,
		},
		{
			name: "empty status is open",
			pr:   model.PR{Number: "PR1"},
			want: true,
		},
	}

	lc := testLifecycle()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lc.IsOpenPR(tt.pr, linked))
		})
	}
}

func TestIsOpenPRConfiguredStatusOverridesClosed(t *testing.T) {
	// "closed" in the configured open set keeps even linked closed PRs open.
	settings := model.DefaultSettings()
	settings.PROpenStatuses = append(settings.PROpenStatuses, "Closed")
	lc := NewLifecycle(settings)

	linked := map[string]struct{}{"PR1": {}}
	assert.True(t, lc.IsOpenPR(model.PR{Number: "PR1", Status: "Closed"}, linked))
}

func TestIsOpenDelivery(t *testing.T) {
	tests := []struct {
		name string
		po   model.PO
		want bool
	}{
		{
			name: "outstanding quantity is open regardless of status",
			po:   model.PO{Quantity: floatPtr(100), GRNQuantity: floatPtr(60), DeliveryStatus: "Completed"},
			want: true,
		},
		{
			name: "fully received closed status is not open",
			po:   model.PO{Quantity: floatPtr(100), GRNQuantity: floatPtr(100), DeliveryStatus: "Closed"},
			want: false,
		},
		{
			name: "over-delivery is not outstanding",
			po:   model.PO{Quantity: floatPtr(100), GRNQuantity: floatPtr(120), DeliveryStatus: "Closed"},
			want: false,
		},
		{
			name: "missing GRN quantity contributes no signal",
			po:   model.PO{Quantity: floatPtr(100), DeliveryStatus: "Completed"},
			want: false,
		},
		{
			name: "configured open status",
			po:   model.PO{DeliveryStatus: "Partial"},
			want: true,
		},
		{
			name: "literal open status is always open",
			po:   model.PO{DeliveryStatus: "OPEN"},
			want: true,
		},
		{
			name: "unconfigured status with no quantities",
			po:   model.PO{DeliveryStatus: "Cancelled"},
			want: false,
		},
	}

	lc := testLifecycle()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lc.IsOpenDelivery(tt.po))
		})
	}
}

func TestIsOpenDeliveryLiteralOpenWithEmptyConfig(t *testing.T) {
	settings := model.DefaultSettings()
	settings.POOpenDeliveryStatuses = nil
	lc := NewLifecycle(settings)

	assert.True(t, lc.IsOpenDelivery(model.PO{DeliveryStatus: "Open"}))
	assert.False(t, lc.IsOpenDelivery(model.PO{DeliveryStatus: "Partial"}))
}
