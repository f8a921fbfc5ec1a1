// Package fees - Reordering of categories, components and subcomponents
package fees

import (
	"proposal-cost/core/types"
)

// MoveCategory reorders a category from one position to another.
// Out-of-range indices are silent no-ops.
func (e *Editor) MoveCategory(fromIndex, toIndex int) (*Editor, bool) {
	n := len(e.categories)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return e, false
	}
	next := types.CloneCategories(e.categories)
	moved := next[fromIndex]
	next = append(next[:fromIndex], next[fromIndex+1:]...)
	next = append(next, types.Category{})
	copy(next[toIndex+1:], next[toIndex:])
	next[toIndex] = moved
	return &Editor{categories: next}, true
}

// MoveFee moves a component within or across categories. The component
// keeps its id; it is removed from the source list and inserted at the
// target index of the destination list (clamped after removal). Moving
// a component onto its own position leaves the list unchanged.
func (e *Editor) MoveFee(fromCategoryID string, fromIndex int, toCategoryID string, toIndex int) (*Editor, bool) {
	fromCat := e.findCategory(fromCategoryID)
	toCat := e.findCategory(toCategoryID)
	if fromCat < 0 || toCat < 0 {
		return e, false
	}
	if fromIndex < 0 || fromIndex >= len(e.categories[fromCat].Fees) {
		return e, false
	}

	next := types.CloneCategories(e.categories)
	src := next[fromCat].Fees
	moved := src[fromIndex]
	next[fromCat].Fees = append(src[:fromIndex], src[fromIndex+1:]...)

	dst := next[toCat].Fees
	at := clamp(toIndex, len(dst))
	dst = append(dst, types.FeeComponent{})
	copy(dst[at+1:], dst[at:])
	dst[at] = moved
	next[toCat].Fees = dst
	return &Editor{categories: next}, true
}

// MoveSubcomponent moves a subcomponent within or across components,
// including across categories. The subcomponent keeps its id. A
// destination component that was previously typed becomes container-only,
// the same demotion AddSubcomponent applies.
func (e *Editor) MoveSubcomponent(
	fromCategoryID, fromFeeID string, fromIndex int,
	toCategoryID, toFeeID string, toIndex int,
) (*Editor, bool) {
	fromCat := e.findCategory(fromCategoryID)
	toCat := e.findCategory(toCategoryID)
	if fromCat < 0 || toCat < 0 {
		return e, false
	}
	fromFee := findFee(e.categories[fromCat].Fees, fromFeeID)
	toFee := findFee(e.categories[toCat].Fees, toFeeID)
	if fromFee < 0 || toFee < 0 {
		return e, false
	}
	if fromIndex < 0 || fromIndex >= len(e.categories[fromCat].Fees[fromFee].Subcomponents) {
		return e, false
	}

	next := types.CloneCategories(e.categories)
	src := &next[fromCat].Fees[fromFee]
	moved := src.Subcomponents[fromIndex]
	src.Subcomponents = append(src.Subcomponents[:fromIndex], src.Subcomponents[fromIndex+1:]...)

	dst := &next[toCat].Fees[toFee]
	at := clamp(toIndex, len(dst.Subcomponents))
	dst.Subcomponents = append(dst.Subcomponents, types.FeeSubcomponent{})
	copy(dst.Subcomponents[at+1:], dst.Subcomponents[at:])
	dst.Subcomponents[at] = moved
	dst.Kind = types.FeeKindUnset
	dst.Simple = nil
	dst.Hourly = nil
	return &Editor{categories: next}, true
}
