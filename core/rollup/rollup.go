// Package rollup computes fee totals bottom-up: subcomponent →
// component → category → grand total. All functions are pure; nothing
// here mutates its input or performs I/O.
//
// The calculator is intentionally permissive: it does not clamp or
// validate, so negative amounts, rates, hours or quantities propagate
// arithmetically. Unset hourly fields count as zero.
package rollup

import (
	"github.com/shopspring/decimal"

	"proposal-cost/core/types"
)

var one = decimal.NewFromInt(1)

// SubcomponentTotal returns the total for a single subcomponent
func SubcomponentTotal(sub types.FeeSubcomponent) decimal.Decimal {
	return variantTotal(sub.Kind, sub.Simple, sub.Hourly)
}

// ComponentTotal returns the total for a fee component. A component with
// at least one subcomponent is container-only: the total is the sum of
// its subcomponent totals and the component's own figures never count.
func ComponentTotal(fee types.FeeComponent) decimal.Decimal {
	if len(fee.Subcomponents) > 0 {
		total := decimal.Zero
		for _, sub := range fee.Subcomponents {
			total = total.Add(SubcomponentTotal(sub))
		}
		return total
	}
	return variantTotal(fee.Kind, fee.Simple, fee.Hourly)
}

// CategoryTotal sums the component totals of a category
func CategoryTotal(c types.Category) decimal.Decimal {
	total := decimal.Zero
	for _, fee := range c.Fees {
		total = total.Add(ComponentTotal(fee))
	}
	return total
}

// GrandTotal sums the category totals
func GrandTotal(categories []types.Category) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(CategoryTotal(c))
	}
	return total
}

// variantTotal evaluates the per-type formula: simple is amount times
// quantity (quantity defaults to 1 when unset), hourly is rate times
// hours, anything else is zero.
func variantTotal(kind types.FeeKind, simple *types.SimpleFee, hourly *types.HourlyFee) decimal.Decimal {
	switch kind {
	case types.FeeKindSimple:
		if simple == nil {
			return decimal.Zero
		}
		qty := one
		if simple.Quantity != nil {
			qty = *simple.Quantity
		}
		return simple.Amount.Mul(qty)
	case types.FeeKindHourly:
		if hourly == nil {
			return decimal.Zero
		}
		return hourly.HourlyRate.Mul(hourly.Hours)
	default:
		return decimal.Zero
	}
}
