// Package structures - Structure duplication
package structures

import (
	"proposal-cost/core/types"
)

// Duplicate creates a deep, identifier-fresh copy of the structure with
// the given id. Every level and space of the copy gets a new id and the
// construction cost records are copied by value. The copy carries
// duplicate_number = count(existing duplicates) + 1 and a stored rate of
// 0.75^(number-1); the rate is never applied here. The copy is inserted
// immediately after the last existing duplicate of the same parent, or
// after the parent itself, keeping the parent-then-duplicates grouping
// stable. Unknown ids and duplicate targets are silent no-ops: only a
// canonical structure can be duplicated.
func (t *Tree) Duplicate(id string) (*Tree, bool) {
	idx := indexOf(t.structures, id)
	if idx < 0 {
		return t, false
	}
	src := t.structures[idx]
	if src.IsDuplicate {
		return t, false
	}

	number := t.duplicateCount(src.ID) + 1

	dup := src.Clone()
	dup.ID = types.NewID()
	dup.Name = duplicateName(src.Name, number)
	dup.IsDuplicate = true
	dup.DuplicateNumber = number
	dup.DuplicateParentID = src.ID
	dup.ParentID = src.ID
	dup.DuplicateRate = RateForDuplicate(number)
	dup.Levels = freshLevels(dup.Levels)

	insertAt := t.lastGroupIndex(src.ID) + 1

	next := make([]types.Structure, 0, len(t.structures)+1)
	for i, s := range t.structures {
		if i == insertAt {
			next = append(next, dup)
		}
		next = append(next, s.Clone())
	}
	if insertAt >= len(t.structures) {
		next = append(next, dup)
	}

	return &Tree{structures: next}, true
}

// duplicateCount counts the existing duplicates of a canonical structure
func (t *Tree) duplicateCount(parentID string) int {
	n := 0
	for i := range t.structures {
		if t.structures[i].IsDuplicate && t.structures[i].DuplicateParentID == parentID {
			n++
		}
	}
	return n
}

// lastGroupIndex returns the index of the last member of the
// parent-then-duplicates group for parentID
func (t *Tree) lastGroupIndex(parentID string) int {
	last := indexOf(t.structures, parentID)
	for i := range t.structures {
		if t.structures[i].DuplicateParentID == parentID && i > last {
			last = i
		}
	}
	return last
}

// freshLevels reassigns every level and space identifier
func freshLevels(levels []types.Level) []types.Level {
	out := types.CloneLevels(levels)
	for i := range out {
		out[i].ID = types.NewID()
		for j := range out[i].Spaces {
			out[i].Spaces[j].ID = types.NewID()
		}
	}
	return out
}
