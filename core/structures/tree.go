// Package structures holds the canonical ordered structure list of a
// proposal and the mutations over it. Every mutation is synchronous and
// copy-on-write: it returns a fresh snapshot and never touches the
// receiver, so callers can commit or discard results atomically.
package structures

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/shopspring/decimal"

	"proposal-cost/core/types"
)

// decayBase is the per-duplicate rate decay factor
var decayBase = decimal.RequireFromString("0.75")

var duplicateSuffix = regexp.MustCompile(`\(Duplicate \d+\)$`)

// Tree is an immutable snapshot of a proposal's structure list
type Tree struct {
	structures []types.Structure
}

// New creates a snapshot from a structure list. The list is deep-copied;
// no validation is performed, consistency is the caller's responsibility.
func New(list []types.Structure) *Tree {
	return &Tree{structures: cloneAll(list)}
}

// SetStructures replaces the entire list
func (t *Tree) SetStructures(list []types.Structure) *Tree {
	return New(list)
}

// Structures returns a deep copy of the ordered structure list
func (t *Tree) Structures() []types.Structure {
	return cloneAll(t.structures)
}

// Len returns the number of structures in the snapshot
func (t *Tree) Len() int {
	return len(t.structures)
}

// Find returns the structure with the given id
func (t *Tree) Find(id string) (types.Structure, bool) {
	idx := indexOf(t.structures, id)
	if idx < 0 {
		return types.Structure{}, false
	}
	return t.structures[idx].Clone(), true
}

// Patch is a partial structure update. Nil fields are left untouched.
type Patch struct {
	// Name replaces the display name
	Name *string

	// Levels replaces the level sequence
	Levels []types.Level

	// DuplicateRate overrides the stored rate multiplier
	DuplicateRate *decimal.Decimal
}

// UpdateStructure merges a partial update into the structure with the
// given id. Updates to a canonical structure propagate to its duplicates:
// a supplied name rewrites each duplicate's display name to
// "<name> (Duplicate N)", and supplied levels are remapped onto each
// duplicate by index, preserving the duplicate's own level/space ids and
// per-space construction costs. An unknown id is a silent no-op.
func (t *Tree) UpdateStructure(id string, patch Patch) (*Tree, bool) {
	idx := indexOf(t.structures, id)
	if idx < 0 {
		return t, false
	}

	next := cloneAll(t.structures)
	target := &next[idx]
	if patch.Name != nil {
		target.Name = *patch.Name
	}
	if patch.Levels != nil {
		target.Levels = types.CloneLevels(patch.Levels)
	}
	if patch.DuplicateRate != nil {
		target.DuplicateRate = *patch.DuplicateRate
	}

	for i := range next {
		if i == idx || next[i].DuplicateParentID != id {
			continue
		}
		d := &next[i]
		if patch.Name != nil {
			d.Name = duplicateName(*patch.Name, d.DuplicateNumber)
		}
		if patch.Levels != nil {
			remapLevels(d, target.Levels)
		}
	}

	return &Tree{structures: next}, true
}

// AddStructure assigns a fresh identifier and appends the structure.
// The assigned id is returned with the new snapshot.
func (t *Tree) AddStructure(s types.Structure) (*Tree, string) {
	s = s.Clone()
	s.ID = types.NewID()

	next := cloneAll(t.structures)
	next = append(next, s)
	return &Tree{structures: next}, s.ID
}

// RemoveStructure removes the structure with the given id. Removing a
// canonical structure cascades to all of its duplicates. Removing a
// duplicate renumbers the parent's remaining duplicates by ascending
// original number, reassigning number, decayed rate and display name.
// An unknown id is a silent no-op.
func (t *Tree) RemoveStructure(id string) (*Tree, bool) {
	idx := indexOf(t.structures, id)
	if idx < 0 {
		return t, false
	}
	target := t.structures[idx]

	if !target.IsDuplicate {
		next := make([]types.Structure, 0, len(t.structures))
		for _, s := range t.structures {
			if s.ID == id || s.DuplicateParentID == id {
				continue
			}
			next = append(next, s.Clone())
		}
		return &Tree{structures: next}, true
	}

	next := make([]types.Structure, 0, len(t.structures)-1)
	for _, s := range t.structures {
		if s.ID == id {
			continue
		}
		next = append(next, s.Clone())
	}
	renumberDuplicates(next, target.DuplicateParentID)
	return &Tree{structures: next}, true
}

// RateForDuplicate returns the stored rate multiplier for the n-th
// duplicate of a structure: 0.75^(n-1).
func RateForDuplicate(n int) decimal.Decimal {
	if n <= 1 {
		return decimal.NewFromInt(1)
	}
	return decayBase.Pow(decimal.NewFromInt(int64(n - 1)))
}

// renumberDuplicates reassigns number, rate and name for the duplicates
// of parentID by ascending original number. Hydrated lists may store a
// group out of list order, so the group is sorted on the old numbers
// before reassigning.
func renumberDuplicates(list []types.Structure, parentID string) {
	var group []*types.Structure
	for i := range list {
		if list[i].IsDuplicate && list[i].DuplicateParentID == parentID {
			group = append(group, &list[i])
		}
	}
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].DuplicateNumber < group[j].DuplicateNumber
	})
	for i, d := range group {
		n := i + 1
		d.DuplicateNumber = n
		d.DuplicateRate = RateForDuplicate(n)
		d.Name = duplicateSuffix.ReplaceAllString(d.Name, fmt.Sprintf("(Duplicate %d)", n))
	}
}

// remapLevels adopts the parent's level content onto a duplicate by
// index. The duplicate keeps its own level and space ids and its own
// construction costs. Indices present on only one side are untouched:
// the duplicate neither gains the parent's trailing levels nor loses its
// stale extras. Known fragility carried over from the source model.
func remapLevels(d *types.Structure, parentLevels []types.Level) {
	for i := range d.Levels {
		if i >= len(parentLevels) {
			break
		}
		dl := &d.Levels[i]
		pl := parentLevels[i]
		dl.Name = pl.Name
		for j := range dl.Spaces {
			if j >= len(pl.Spaces) {
				break
			}
			ds := &dl.Spaces[j]
			ds.Name = pl.Spaces[j].Name
		}
	}
}

func duplicateName(parentName string, number int) string {
	return fmt.Sprintf("%s (Duplicate %d)", parentName, number)
}

func indexOf(list []types.Structure, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(list []types.Structure) []types.Structure {
	out := make([]types.Structure, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}
