// Package fees maintains the flexible fee editor model: an ordered list
// of categories, each with ordered fee components, each optionally with
// one level of ordered subcomponents.
//
// Like the structure tree, the editor is copy-on-write: every mutation
// returns a fresh snapshot and reports whether anything changed. Unknown
// ids are silent no-ops, mirroring the observable behavior of the source
// application while still letting strict callers check the flag.
package fees

import (
	"strings"

	"proposal-cost/core/types"
)

// Placeholder names applied when a rename submits empty or
// whitespace-only input.
const (
	PlaceholderCategory     = "Untitled Category"
	PlaceholderComponent    = "Untitled Component"
	PlaceholderSubcomponent = "Untitled Subcomponent"
)

// Editor is an immutable snapshot of the category/component tree
type Editor struct {
	categories []types.Category
}

// New creates a snapshot from a category list
func New(categories []types.Category) *Editor {
	return &Editor{categories: types.CloneCategories(categories)}
}

// Categories returns a deep copy of the ordered category list
func (e *Editor) Categories() []types.Category {
	return types.CloneCategories(e.categories)
}

// AddCategoryAt inserts a new empty-named category at the given
// position (clamped to the list bounds) and returns its id.
func (e *Editor) AddCategoryAt(index int) (*Editor, string) {
	c := types.Category{ID: types.NewID()}

	next := types.CloneCategories(e.categories)
	index = clamp(index, len(next))
	next = append(next, types.Category{})
	copy(next[index+1:], next[index:])
	next[index] = c
	return &Editor{categories: next}, c.ID
}

// RenameCategory replaces a category's name, falling back to the
// placeholder on empty or whitespace-only input
func (e *Editor) RenameCategory(id, name string) (*Editor, bool) {
	ci := e.findCategory(id)
	if ci < 0 {
		return e, false
	}
	next := types.CloneCategories(e.categories)
	next[ci].Name = orPlaceholder(name, PlaceholderCategory)
	return &Editor{categories: next}, true
}

// DeleteCategory removes the category and, by ownership, all of its
// components and subcomponents
func (e *Editor) DeleteCategory(id string) (*Editor, bool) {
	ci := e.findCategory(id)
	if ci < 0 {
		return e, false
	}
	next := make([]types.Category, 0, len(e.categories)-1)
	for i, c := range e.categories {
		if i == ci {
			continue
		}
		next = append(next, c.Clone())
	}
	return &Editor{categories: next}, true
}

// AddFee inserts a new untyped fee component immediately after
// afterIndex within the category's fee list and returns its id.
// afterIndex -1 inserts at the front.
func (e *Editor) AddFee(categoryID string, afterIndex int) (*Editor, string) {
	ci := e.findCategory(categoryID)
	if ci < 0 {
		return e, ""
	}
	fee := types.FeeComponent{ID: types.NewID(), Kind: types.FeeKindUnset}

	next := types.CloneCategories(e.categories)
	list := next[ci].Fees
	at := clamp(afterIndex+1, len(list))
	list = append(list, types.FeeComponent{})
	copy(list[at+1:], list[at:])
	list[at] = fee
	next[ci].Fees = list
	return &Editor{categories: next}, fee.ID
}

// RenameFee replaces a component's name, falling back to the
// placeholder on empty or whitespace-only input
func (e *Editor) RenameFee(categoryID, feeID, name string) (*Editor, bool) {
	next, fee := e.cloneForFee(categoryID, feeID)
	if fee == nil {
		return e, false
	}
	fee.Name = orPlaceholder(name, PlaceholderComponent)
	return &Editor{categories: next}, true
}

// AddSubcomponent appends a new untyped subcomponent to the component
// and returns its id. Adding the first subcomponent demotes the parent
// to container-only: its own type resets to unset.
func (e *Editor) AddSubcomponent(categoryID, feeID string) (*Editor, string) {
	next, fee := e.cloneForFee(categoryID, feeID)
	if fee == nil {
		return e, ""
	}
	sub := types.FeeSubcomponent{ID: types.NewID(), Kind: types.FeeKindUnset}
	fee.Subcomponents = append(fee.Subcomponents, sub)
	fee.Kind = types.FeeKindUnset
	fee.Simple = nil
	fee.Hourly = nil
	return &Editor{categories: next}, sub.ID
}

// RenameSubcomponent replaces a subcomponent's name, falling back to
// the placeholder on empty or whitespace-only input
func (e *Editor) RenameSubcomponent(categoryID, feeID, subID, name string) (*Editor, bool) {
	next, sub := e.cloneForSub(categoryID, feeID, subID)
	if sub == nil {
		return e, false
	}
	sub.Name = orPlaceholder(name, PlaceholderSubcomponent)
	return &Editor{categories: next}, true
}

// DeleteFee removes a component and its subcomponents
func (e *Editor) DeleteFee(categoryID, feeID string) (*Editor, bool) {
	ci := e.findCategory(categoryID)
	if ci < 0 {
		return e, false
	}
	fi := findFee(e.categories[ci].Fees, feeID)
	if fi < 0 {
		return e, false
	}
	next := types.CloneCategories(e.categories)
	next[ci].Fees = append(next[ci].Fees[:fi], next[ci].Fees[fi+1:]...)
	return &Editor{categories: next}, true
}

// DeleteSubcomponent removes a subcomponent from its parent component
func (e *Editor) DeleteSubcomponent(categoryID, feeID, subID string) (*Editor, bool) {
	next, fee := e.cloneForFee(categoryID, feeID)
	if fee == nil {
		return e, false
	}
	si := findSub(fee.Subcomponents, subID)
	if si < 0 {
		return e, false
	}
	fee.Subcomponents = append(fee.Subcomponents[:si], fee.Subcomponents[si+1:]...)
	return &Editor{categories: next}, true
}

// SetFeeType assigns the simple or hourly variant to a component.
// Switching discards the other variant's fields entirely. A component
// with subcomponents is container-only and keeps its forced unset type.
func (e *Editor) SetFeeType(categoryID, feeID string, kind types.FeeKind) (*Editor, bool) {
	next, fee := e.cloneForFee(categoryID, feeID)
	if fee == nil || len(fee.Subcomponents) > 0 {
		return e, false
	}
	if !assignKind(&fee.Kind, &fee.Simple, &fee.Hourly, kind) {
		return e, false
	}
	return &Editor{categories: next}, true
}

// SetSubType assigns the simple or hourly variant to a subcomponent
func (e *Editor) SetSubType(categoryID, feeID, subID string, kind types.FeeKind) (*Editor, bool) {
	next, sub := e.cloneForSub(categoryID, feeID, subID)
	if sub == nil {
		return e, false
	}
	if !assignKind(&sub.Kind, &sub.Simple, &sub.Hourly, kind) {
		return e, false
	}
	return &Editor{categories: next}, true
}

// ReplaceFee swaps the component with the same id for the supplied
// value. Ids are immutable, so the replacement keeps the stored id.
func (e *Editor) ReplaceFee(categoryID string, fee types.FeeComponent) (*Editor, bool) {
	next, target := e.cloneForFee(categoryID, fee.ID)
	if target == nil {
		return e, false
	}
	replacement := fee.Clone()
	replacement.ID = target.ID
	*target = replacement
	return &Editor{categories: next}, true
}

// ReplaceSubcomponent swaps the subcomponent with the same id for the
// supplied value
func (e *Editor) ReplaceSubcomponent(categoryID, feeID string, sub types.FeeSubcomponent) (*Editor, bool) {
	next, target := e.cloneForSub(categoryID, feeID, sub.ID)
	if target == nil {
		return e, false
	}
	replacement := sub.Clone()
	replacement.ID = target.ID
	*target = replacement
	return &Editor{categories: next}, true
}

// assignKind performs the type transition, reusing the variant's
// existing fields when the kind is unchanged and discarding the other
// variant. Only simple and hourly are user-assignable.
func assignKind(kind *types.FeeKind, simple **types.SimpleFee, hourly **types.HourlyFee, to types.FeeKind) bool {
	switch to {
	case types.FeeKindSimple:
		*kind = types.FeeKindSimple
		if *simple == nil {
			*simple = &types.SimpleFee{}
		}
		*hourly = nil
	case types.FeeKindHourly:
		*kind = types.FeeKindHourly
		if *hourly == nil {
			*hourly = &types.HourlyFee{}
		}
		*simple = nil
	default:
		return false
	}
	return true
}

// cloneForFee clones the category list and returns a pointer to the fee
// inside the clone, or nil when the ids don't resolve
func (e *Editor) cloneForFee(categoryID, feeID string) ([]types.Category, *types.FeeComponent) {
	ci := e.findCategory(categoryID)
	if ci < 0 {
		return nil, nil
	}
	fi := findFee(e.categories[ci].Fees, feeID)
	if fi < 0 {
		return nil, nil
	}
	next := types.CloneCategories(e.categories)
	return next, &next[ci].Fees[fi]
}

// cloneForSub clones the category list and returns a pointer to the
// subcomponent inside the clone, or nil when the ids don't resolve
func (e *Editor) cloneForSub(categoryID, feeID, subID string) ([]types.Category, *types.FeeSubcomponent) {
	next, fee := e.cloneForFee(categoryID, feeID)
	if fee == nil {
		return nil, nil
	}
	si := findSub(fee.Subcomponents, subID)
	if si < 0 {
		return nil, nil
	}
	return next, &fee.Subcomponents[si]
}

func (e *Editor) findCategory(id string) int {
	for i := range e.categories {
		if e.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func findFee(list []types.FeeComponent, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func findSub(list []types.FeeSubcomponent, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func orPlaceholder(name, placeholder string) string {
	if strings.TrimSpace(name) == "" {
		return placeholder
	}
	return name
}

func clamp(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
