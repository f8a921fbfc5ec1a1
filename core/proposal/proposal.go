// Package proposal owns the in-memory fee proposal aggregate: the
// structure tree, the fee editor state and the opaque reference-table
// payloads carried alongside them in the persisted record.
//
// The aggregate is an owned, mutable object handed to whichever layer
// drives it; there is no process-wide singleton. Mutation happens by
// committing fresh snapshots produced by the structures and fees
// packages, so a caller always completes one mutation before
// dispatching the next.
package proposal

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"proposal-cost/core/fees"
	"proposal-cost/core/rollup"
	"proposal-cost/core/structures"
	"proposal-cost/core/types"
)

// Proposal is the hydrated fee proposal aggregate
type Proposal struct {
	// ID is the server-assigned record id; empty until first persisted
	ID string

	tree   *structures.Tree
	editor *fees.Editor

	// Opaque reference payloads round-tripped verbatim
	disciplines     json.RawMessage
	services        json.RawMessage
	trackedServices json.RawMessage
}

// New creates an empty proposal
func New() *Proposal {
	return &Proposal{
		tree:   structures.New(nil),
		editor: fees.New(nil),
	}
}

// Tree returns the current structure tree snapshot
func (p *Proposal) Tree() *structures.Tree {
	return p.tree
}

// CommitTree commits a new structure tree snapshot
func (p *Proposal) CommitTree(t *structures.Tree) {
	if t != nil {
		p.tree = t
	}
}

// Editor returns the current fee editor snapshot
func (p *Proposal) Editor() *fees.Editor {
	return p.editor
}

// CommitEditor commits a new fee editor snapshot
func (p *Proposal) CommitEditor(e *fees.Editor) {
	if e != nil {
		p.editor = e
	}
}

// GrandTotal rolls up the full fee total across all categories
func (p *Proposal) GrandTotal() decimal.Decimal {
	return rollup.GrandTotal(p.editor.Categories())
}

// CategoryTotals returns the rollup per category, in category order
func (p *Proposal) CategoryTotals() []CategoryTotal {
	categories := p.editor.Categories()
	out := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		out[i] = CategoryTotal{
			CategoryID: c.ID,
			Name:       c.Name,
			Total:      rollup.CategoryTotal(c),
		}
	}
	return out
}

// CategoryTotal pairs a category with its rolled-up total
type CategoryTotal struct {
	// CategoryID identifies the category
	CategoryID string `json:"category_id"`

	// Name is the category display name
	Name string `json:"name"`

	// Total is the rolled-up category total
	Total decimal.Decimal `json:"total"`
}

// ConstructionTotal pairs a structure with its construction cost sum
type ConstructionTotal struct {
	// StructureID identifies the structure
	StructureID string `json:"structure_id"`

	// Name is the structure display name
	Name string `json:"name"`

	// Total is the summed construction cost record
	Total decimal.Decimal `json:"total"`

	// DuplicateRate is the stored rate multiplier, reported but not
	// applied
	DuplicateRate decimal.Decimal `json:"duplicate_rate"`
}

// ConstructionTotals returns the construction cost sum per structure,
// in list order. The duplicate rate travels with each entry for
// downstream consumers; it is not applied here.
func (p *Proposal) ConstructionTotals() []ConstructionTotal {
	list := p.tree.Structures()
	out := make([]ConstructionTotal, len(list))
	for i, s := range list {
		out[i] = ConstructionTotal{
			StructureID:   s.ID,
			Name:          s.Name,
			Total:         s.ConstructionTotal(),
			DuplicateRate: s.DuplicateRate,
		}
	}
	return out
}

// Structures returns the current structure list
func (p *Proposal) Structures() []types.Structure {
	return p.tree.Structures()
}

// Categories returns the current category list
func (p *Proposal) Categories() []types.Category {
	return p.editor.Categories()
}
