// Package types - Fee editor types
package types

import "github.com/shopspring/decimal"

// FeeKind discriminates the fee line variants
type FeeKind string

const (
	// FeeKindUnset means the user has not picked a type yet. A component
	// whose subcomponent list is non-empty is always treated as unset:
	// it is container-only and its own figures never count.
	FeeKindUnset FeeKind = ""

	// FeeKindSimple is a flat rate times quantity
	FeeKindSimple FeeKind = "simple"

	// FeeKindHourly is an hourly rate times hours
	FeeKindHourly FeeKind = "hourly"
)

// SimpleFee carries the fields of a simple (flat-rate) fee line
type SimpleFee struct {
	// Amount is the rate per unit
	Amount decimal.Decimal `json:"amount"`

	// Quantity multiplies the amount; nil means the default of 1
	Quantity *decimal.Decimal `json:"quantity,omitempty"`

	// Description provides additional context
	Description string `json:"description,omitempty"`
}

// HourlyFee carries the fields of an hourly fee line
type HourlyFee struct {
	// DisciplineID keys the rate table
	DisciplineID string `json:"discipline_id,omitempty"`

	// RoleID keys the rate table
	RoleID string `json:"role_id,omitempty"`

	// RoleDesignation refines the role; empty when not set
	RoleDesignation string `json:"role_designation,omitempty"`

	// HourlyRate is resolved from the external rate table
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	// Hours is the estimated hours
	Hours decimal.Decimal `json:"hours"`
}

// FeeSubcomponent is a fee line nested under a component.
// Nesting stops here: subcomponents never have children of their own.
type FeeSubcomponent struct {
	// ID uniquely identifies the subcomponent
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Kind is the selected fee variant
	Kind FeeKind `json:"type"`

	// Simple is set when Kind is simple
	Simple *SimpleFee `json:"simple,omitempty"`

	// Hourly is set when Kind is hourly
	Hourly *HourlyFee `json:"hourly,omitempty"`
}

// FeeComponent is a named fee line within a category
type FeeComponent struct {
	// ID uniquely identifies the component
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Kind is the selected fee variant
	Kind FeeKind `json:"type"`

	// Simple is set when Kind is simple
	Simple *SimpleFee `json:"simple,omitempty"`

	// Hourly is set when Kind is hourly
	Hourly *HourlyFee `json:"hourly,omitempty"`

	// Subcomponents is the ordered nested fee lines. Once non-empty the
	// component is container-only.
	Subcomponents []FeeSubcomponent `json:"subcomponents,omitempty"`
}

// Category is a named grouping of fee components
type Category struct {
	// ID is a process-unique string key
	ID string `json:"id"`

	// Name is the display name
	Name string `json:"name"`

	// Fees is the ordered sequence of fee components
	Fees []FeeComponent `json:"fees"`
}

// Clone returns a deep copy of the category
func (c Category) Clone() Category {
	out := c
	if c.Fees != nil {
		out.Fees = make([]FeeComponent, len(c.Fees))
		for i, f := range c.Fees {
			out.Fees[i] = f.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the component
func (f FeeComponent) Clone() FeeComponent {
	out := f
	out.Simple = f.Simple.clone()
	out.Hourly = f.Hourly.clone()
	if f.Subcomponents != nil {
		out.Subcomponents = make([]FeeSubcomponent, len(f.Subcomponents))
		for i, sub := range f.Subcomponents {
			out.Subcomponents[i] = sub.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the subcomponent
func (s FeeSubcomponent) Clone() FeeSubcomponent {
	out := s
	out.Simple = s.Simple.clone()
	out.Hourly = s.Hourly.clone()
	return out
}

func (s *SimpleFee) clone() *SimpleFee {
	if s == nil {
		return nil
	}
	out := *s
	if s.Quantity != nil {
		q := *s.Quantity
		out.Quantity = &q
	}
	return &out
}

func (h *HourlyFee) clone() *HourlyFee {
	if h == nil {
		return nil
	}
	out := *h
	return &out
}

// CloneCategories returns a deep copy of a category sequence
func CloneCategories(categories []Category) []Category {
	if categories == nil {
		return nil
	}
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.Clone()
	}
	return out
}
