// Package fees - Hourly rate resolution against the external rate table
package fees

import (
	"proposal-cost/core/rates"
	"proposal-cost/core/types"
)

// UpdateFeeWithRole resolves the hourly rate for a component from the
// rate table, using the component's currently-set discipline plus the
// given role and designation. When no matching rate exists the call is
// a silent no-op and the component keeps its previous rate and type.
func (e *Editor) UpdateFeeWithRole(table *rates.Table, categoryID, feeID, roleID, designation string) (*Editor, bool) {
	next, fee := e.cloneForFee(categoryID, feeID)
	if fee == nil {
		return e, false
	}
	hourly, ok := resolveRole(table, fee.Hourly, roleID, designation)
	if !ok {
		return e, false
	}
	fee.Kind = types.FeeKindHourly
	fee.Hourly = hourly
	fee.Simple = nil
	return &Editor{categories: next}, true
}

// UpdateSubWithRole is UpdateFeeWithRole for a subcomponent
func (e *Editor) UpdateSubWithRole(table *rates.Table, categoryID, feeID, subID, roleID, designation string) (*Editor, bool) {
	next, sub := e.cloneForSub(categoryID, feeID, subID)
	if sub == nil {
		return e, false
	}
	hourly, ok := resolveRole(table, sub.Hourly, roleID, designation)
	if !ok {
		return e, false
	}
	sub.Kind = types.FeeKindHourly
	sub.Hourly = hourly
	sub.Simple = nil
	return &Editor{categories: next}, true
}

// resolveRole looks up (discipline, role, designation) and, on a hit,
// returns the updated hourly variant. A line without a discipline can
// never resolve.
func resolveRole(table *rates.Table, current *types.HourlyFee, roleID, designation string) (*types.HourlyFee, bool) {
	if table == nil || current == nil || current.DisciplineID == "" {
		return nil, false
	}
	rate, ok := table.Lookup(current.DisciplineID, roleID, designation)
	if !ok {
		return nil, false
	}
	updated := *current
	updated.RoleID = roleID
	updated.RoleDesignation = designation
	updated.HourlyRate = rate
	return &updated, true
}
