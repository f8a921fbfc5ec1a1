package rollup

import (
	"testing"

	"github.com/shopspring/decimal"

	"proposal-cost/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func simple(amount, qty string) types.FeeComponent {
	f := types.FeeComponent{
		ID:     types.NewID(),
		Kind:   types.FeeKindSimple,
		Simple: &types.SimpleFee{Amount: dec(amount)},
	}
	if qty != "" {
		f.Simple.Quantity = decPtr(qty)
	}
	return f
}

func hourly(rate, hours string) types.FeeComponent {
	return types.FeeComponent{
		ID:   types.NewID(),
		Kind: types.FeeKindHourly,
		Hourly: &types.HourlyFee{
			HourlyRate: dec(rate),
			Hours:      dec(hours),
		},
	}
}

func TestComponentTotal(t *testing.T) {
	cases := []struct {
		name string
		fee  types.FeeComponent
		want string
	}{
		{"simple with quantity", simple("250", "4"), "1000"},
		{"simple nil quantity defaults to one", simple("250", ""), "250"},
		{"simple explicit zero quantity", simple("250", "0"), "0"},
		{"hourly", hourly("185", "12.5"), "2312.5"},
		{"unset kind", types.FeeComponent{ID: "x"}, "0"},
		{"negative amount propagates", simple("-100", "3"), "-300"},
		{"negative hours propagate", hourly("150", "-2"), "-300"},
		{"fractional precision", simple("0.1", "3"), "0.3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComponentTotal(tc.fee)
			if !got.Equal(dec(tc.want)) {
				t.Errorf("ComponentTotal() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestComponentTotalMissingVariantIsZero(t *testing.T) {
	// Kind says simple but the variant payload is absent; the calculator
	// treats that as zero rather than failing.
	fee := types.FeeComponent{ID: "x", Kind: types.FeeKindSimple}
	if got := ComponentTotal(fee); !got.IsZero() {
		t.Errorf("ComponentTotal() = %s, want 0", got)
	}
}

func TestContainerComponentIgnoresOwnFigures(t *testing.T) {
	fee := simple("500", "2")
	fee.Subcomponents = []types.FeeSubcomponent{
		{
			ID:     types.NewID(),
			Kind:   types.FeeKindSimple,
			Simple: &types.SimpleFee{Amount: dec("300")},
		},
	}

	got := ComponentTotal(fee)
	if !got.Equal(dec("300")) {
		t.Errorf("ComponentTotal() = %s, want 300 (own 500x2 must not count)", got)
	}
}

func TestContainerComponentSumsAllSubcomponents(t *testing.T) {
	fee := types.FeeComponent{
		ID: types.NewID(),
		Subcomponents: []types.FeeSubcomponent{
			{ID: "a", Kind: types.FeeKindSimple, Simple: &types.SimpleFee{Amount: dec("100"), Quantity: decPtr("2")}},
			{ID: "b", Kind: types.FeeKindHourly, Hourly: &types.HourlyFee{HourlyRate: dec("150"), Hours: dec("3")}},
			{ID: "c"},
		},
	}

	got := ComponentTotal(fee)
	if !got.Equal(dec("650")) {
		t.Errorf("ComponentTotal() = %s, want 650", got)
	}
}

func TestCategoryAndGrandTotal(t *testing.T) {
	categories := []types.Category{
		{
			ID:   "design",
			Name: "Design",
			Fees: []types.FeeComponent{simple("1000", "1"), hourly("200", "10")},
		},
		{
			ID:   "permits",
			Name: "Permits",
			Fees: []types.FeeComponent{simple("500", "2")},
		},
		{
			ID:   "empty",
			Name: "Empty",
		},
	}

	if got := CategoryTotal(categories[0]); !got.Equal(dec("3000")) {
		t.Errorf("CategoryTotal() = %s, want 3000", got)
	}
	if got := CategoryTotal(categories[2]); !got.IsZero() {
		t.Errorf("empty CategoryTotal() = %s, want 0", got)
	}
	if got := GrandTotal(categories); !got.Equal(dec("4000")) {
		t.Errorf("GrandTotal() = %s, want 4000", got)
	}
	if got := GrandTotal(nil); !got.IsZero() {
		t.Errorf("GrandTotal(nil) = %s, want 0", got)
	}
}
