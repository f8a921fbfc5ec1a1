// Package types defines the shared domain model for the fee proposal engine.
package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewID generates a fresh entity identifier.
// Identifiers are assigned at creation time and never change.
func NewID() string {
	return uuid.New().String()
}

// Structure is a top-level cost/fee grouping in a proposal (e.g. a building)
type Structure struct {
	// ID uniquely identifies the structure
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Levels is the ordered sequence of levels
	Levels []Level `json:"levels"`

	// IsDuplicate marks a cloned structure
	IsDuplicate bool `json:"is_duplicate,omitempty"`

	// DuplicateNumber is the 1-based position among the parent's duplicates
	DuplicateNumber int `json:"duplicate_number,omitempty"`

	// DuplicateParentID references the canonical origin structure
	DuplicateParentID string `json:"duplicate_parent_id,omitempty"`

	// DuplicateRate is the decaying rate multiplier. It is stored here for
	// downstream consumers; nothing in this engine applies it to a cost.
	DuplicateRate decimal.Decimal `json:"duplicate_rate"`

	// ParentID is the creation-time alias of DuplicateParentID
	ParentID string `json:"parent_id,omitempty"`
}

// Level belongs to exactly one structure
type Level struct {
	// ID uniquely identifies the level
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Spaces is the ordered sequence of spaces
	Spaces []Space `json:"spaces"`
}

// Space belongs to exactly one level
type Space struct {
	// ID uniquely identifies the space
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// ConstructionCosts maps cost category to cost. Opaque to the fee
	// rollup; it is the one field a duplicate legitimately diverges on.
	ConstructionCosts map[string]decimal.Decimal `json:"construction_costs,omitempty"`
}

// Clone returns a deep copy of the structure
func (s Structure) Clone() Structure {
	out := s
	out.Levels = CloneLevels(s.Levels)
	return out
}

// CloneLevels returns a deep copy of a level sequence
func CloneLevels(levels []Level) []Level {
	if levels == nil {
		return nil
	}
	out := make([]Level, len(levels))
	for i, l := range levels {
		out[i] = l.Clone()
	}
	return out
}

// Clone returns a deep copy of the level
func (l Level) Clone() Level {
	out := l
	if l.Spaces != nil {
		out.Spaces = make([]Space, len(l.Spaces))
		for i, sp := range l.Spaces {
			out.Spaces[i] = sp.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the space
func (s Space) Clone() Space {
	out := s
	if s.ConstructionCosts != nil {
		out.ConstructionCosts = make(map[string]decimal.Decimal, len(s.ConstructionCosts))
		for k, v := range s.ConstructionCosts {
			out.ConstructionCosts[k] = v
		}
	}
	return out
}

// ConstructionTotal sums the space's construction cost record
func (s Space) ConstructionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.ConstructionCosts {
		total = total.Add(v)
	}
	return total
}

// ConstructionTotal sums construction costs across all spaces of the level
func (l Level) ConstructionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, sp := range l.Spaces {
		total = total.Add(sp.ConstructionTotal())
	}
	return total
}

// ConstructionTotal sums construction costs across the whole structure.
// The duplicate rate is stored, not applied, so it plays no part here.
func (s Structure) ConstructionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Levels {
		total = total.Add(l.ConstructionTotal())
	}
	return total
}
