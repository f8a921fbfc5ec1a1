// Package rates provides the in-memory hourly-rate lookup table.
// The table is an external, read-only collaborator: it is fetched once
// by the caller (editor mount, server start) and the engine only ever
// resolves rates against the cached copy. Refreshing it is an external
// concern.
package rates

import (
	"github.com/shopspring/decimal"

	"proposal-cost/core/types"
)

// Table is an immutable in-memory rate table
type Table struct {
	rows  []types.HourlyRate
	byKey map[types.RateKey]decimal.Decimal
}

// NewTable builds a table from rate rows. Later rows win on key
// collisions, matching last-write semantics of the upstream table.
func NewTable(rows []types.HourlyRate) *Table {
	t := &Table{
		rows:  make([]types.HourlyRate, len(rows)),
		byKey: make(map[types.RateKey]decimal.Decimal, len(rows)),
	}
	copy(t.rows, rows)
	for _, r := range rows {
		t.byKey[r.Key] = r.Rate
	}
	return t
}

// All returns every rate row
func (t *Table) All() []types.HourlyRate {
	out := make([]types.HourlyRate, len(t.rows))
	copy(out, t.rows)
	return out
}

// ForDiscipline returns the rows for one discipline
func (t *Table) ForDiscipline(disciplineID string) []types.HourlyRate {
	var out []types.HourlyRate
	for _, r := range t.rows {
		if r.Key.DisciplineID == disciplineID {
			out = append(out, r)
		}
	}
	return out
}

// Lookup resolves the rate for a discipline, role and designation.
// The second return reports whether a matching row exists.
func (t *Table) Lookup(disciplineID, roleID, designation string) (decimal.Decimal, bool) {
	rate, ok := t.byKey[types.RateKey{
		DisciplineID: disciplineID,
		RoleID:       roleID,
		Designation:  designation,
	}]
	return rate, ok
}

// Size returns the number of distinct rate keys
func (t *Table) Size() int {
	return len(t.byKey)
}
