// Package proposal - project_data hydration and serialization
//
// The persisted record shape is:
//
//	{ "structures": [...], "calculations": [...],
//	  "disciplines": [...], "services": [...], "tracked_services": [...] }
//
// Fee lines are stored flat: the type-specific fields sit next to each
// other on one object and "type" discriminates them. In memory that
// shape becomes the tagged fee variants of core/types; the codec is the
// only place the two representations meet.
package proposal

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"proposal-cost/core/fees"
	"proposal-cost/core/structures"
	"proposal-cost/core/types"
)

// envelope is the persisted project_data shape. Sections are kept raw
// so each decodes independently: a missing or malformed section
// defaults to empty instead of failing the load.
type envelope struct {
	Structures      json.RawMessage `json:"structures"`
	Calculations    json.RawMessage `json:"calculations"`
	Disciplines     json.RawMessage `json:"disciplines"`
	Services        json.RawMessage `json:"services"`
	TrackedServices json.RawMessage `json:"tracked_services"`
}

type structureWire struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Levels            []levelWire      `json:"levels"`
	IsDuplicate       bool             `json:"is_duplicate,omitempty"`
	DuplicateNumber   int              `json:"duplicate_number,omitempty"`
	DuplicateParentID string           `json:"duplicate_parent_id,omitempty"`
	DuplicateRate     *decimal.Decimal `json:"duplicate_rate,omitempty"`
	ParentID          string           `json:"parent_id,omitempty"`
}

type levelWire struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Spaces []spaceWire `json:"spaces"`
}

type spaceWire struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"name"`
	ConstructionCosts map[string]decimal.Decimal `json:"construction_costs,omitempty"`
}

type categoryWire struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Fees []feeWire `json:"fees"`
}

type feeWire struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Type            string           `json:"type,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	Description     string           `json:"description,omitempty"`
	DisciplineID    string           `json:"discipline_id,omitempty"`
	RoleID          string           `json:"role_id,omitempty"`
	RoleDesignation *string          `json:"role_designation,omitempty"`
	HourlyRate      *decimal.Decimal `json:"hourlyRate,omitempty"`
	Hours           *decimal.Decimal `json:"hours,omitempty"`
	Subcomponents   []feeWire        `json:"subcomponents,omitempty"`
}

// Hydrate builds a proposal from a persisted project_data payload.
// Loading is defensive: missing or malformed sections become empty
// collections, never errors.
func Hydrate(projectData []byte) *Proposal {
	var env envelope
	if len(projectData) > 0 {
		_ = json.Unmarshal(projectData, &env)
	}

	var structureWires []structureWire
	decodeSection(env.Structures, &structureWires)
	var categoryWires []categoryWire
	decodeSection(env.Calculations, &categoryWires)

	list := make([]types.Structure, len(structureWires))
	for i, w := range structureWires {
		list[i] = structureFromWire(w)
	}
	categories := make([]types.Category, len(categoryWires))
	for i, w := range categoryWires {
		categories[i] = categoryFromWire(w)
	}

	return &Proposal{
		tree:            structures.New(list),
		editor:          fees.New(categories),
		disciplines:     rawOrEmpty(env.Disciplines),
		services:        rawOrEmpty(env.Services),
		trackedServices: rawOrEmpty(env.TrackedServices),
	}
}

// HydrateRecord is Hydrate plus the server-assigned record id
func HydrateRecord(id string, projectData []byte) *Proposal {
	p := Hydrate(projectData)
	p.ID = id
	return p
}

// Serialize renders the aggregate back into the project_data shape.
// Hydrate(p.Serialize()) reproduces an identical in-memory state.
func (p *Proposal) Serialize() ([]byte, error) {
	list := p.tree.Structures()
	structureWires := make([]structureWire, len(list))
	for i, s := range list {
		structureWires[i] = structureToWire(s)
	}

	categories := p.editor.Categories()
	categoryWires := make([]categoryWire, len(categories))
	for i, c := range categories {
		categoryWires[i] = categoryToWire(c)
	}

	sw, err := json.Marshal(structureWires)
	if err != nil {
		return nil, err
	}
	cw, err := json.Marshal(categoryWires)
	if err != nil {
		return nil, err
	}

	return json.Marshal(envelope{
		Structures:      sw,
		Calculations:    cw,
		Disciplines:     rawOrEmpty(p.disciplines),
		Services:        rawOrEmpty(p.services),
		TrackedServices: rawOrEmpty(p.trackedServices),
	})
}

func decodeSection(raw json.RawMessage, v interface{}) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}

func rawOrEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("[]")
	}
	return raw
}

func structureFromWire(w structureWire) types.Structure {
	s := types.Structure{
		ID:                w.ID,
		Name:              w.Name,
		IsDuplicate:       w.IsDuplicate,
		DuplicateNumber:   w.DuplicateNumber,
		DuplicateParentID: w.DuplicateParentID,
		ParentID:          w.ParentID,
		DuplicateRate:     decimal.NewFromInt(1),
		Levels:            make([]types.Level, len(w.Levels)),
	}
	if w.DuplicateRate != nil {
		s.DuplicateRate = *w.DuplicateRate
	}
	for i, lw := range w.Levels {
		level := types.Level{ID: lw.ID, Name: lw.Name, Spaces: make([]types.Space, len(lw.Spaces))}
		for j, sw := range lw.Spaces {
			level.Spaces[j] = types.Space{ID: sw.ID, Name: sw.Name, ConstructionCosts: sw.ConstructionCosts}
		}
		s.Levels[i] = level
	}
	return s
}

func structureToWire(s types.Structure) structureWire {
	rate := s.DuplicateRate
	w := structureWire{
		ID:                s.ID,
		Name:              s.Name,
		IsDuplicate:       s.IsDuplicate,
		DuplicateNumber:   s.DuplicateNumber,
		DuplicateParentID: s.DuplicateParentID,
		ParentID:          s.ParentID,
		DuplicateRate:     &rate,
		Levels:            make([]levelWire, len(s.Levels)),
	}
	for i, l := range s.Levels {
		lw := levelWire{ID: l.ID, Name: l.Name, Spaces: make([]spaceWire, len(l.Spaces))}
		for j, sp := range l.Spaces {
			lw.Spaces[j] = spaceWire{ID: sp.ID, Name: sp.Name, ConstructionCosts: sp.ConstructionCosts}
		}
		w.Levels[i] = lw
	}
	return w
}

func categoryFromWire(w categoryWire) types.Category {
	c := types.Category{ID: w.ID, Name: w.Name, Fees: make([]types.FeeComponent, len(w.Fees))}
	for i, fw := range w.Fees {
		c.Fees[i] = feeFromWire(fw)
	}
	return c
}

func categoryToWire(c types.Category) categoryWire {
	w := categoryWire{ID: c.ID, Name: c.Name, Fees: make([]feeWire, len(c.Fees))}
	for i, f := range c.Fees {
		w.Fees[i] = feeToWire(f)
	}
	return w
}

func feeFromWire(w feeWire) types.FeeComponent {
	fee := types.FeeComponent{ID: w.ID, Name: w.Name}
	fee.Kind, fee.Simple, fee.Hourly = variantFromWire(w)
	if len(w.Subcomponents) > 0 {
		fee.Subcomponents = make([]types.FeeSubcomponent, len(w.Subcomponents))
		for i, sw := range w.Subcomponents {
			sub := types.FeeSubcomponent{ID: sw.ID, Name: sw.Name}
			sub.Kind, sub.Simple, sub.Hourly = variantFromWire(sw)
			fee.Subcomponents[i] = sub
		}
	}
	return fee
}

// variantFromWire maps the flat stored fields onto the tagged variant.
// An unrecognized type string is treated as unset.
func variantFromWire(w feeWire) (types.FeeKind, *types.SimpleFee, *types.HourlyFee) {
	switch types.FeeKind(w.Type) {
	case types.FeeKindSimple:
		simple := &types.SimpleFee{Description: w.Description}
		if w.Amount != nil {
			simple.Amount = *w.Amount
		}
		if w.Quantity != nil {
			q := *w.Quantity
			simple.Quantity = &q
		}
		return types.FeeKindSimple, simple, nil
	case types.FeeKindHourly:
		hourly := &types.HourlyFee{
			DisciplineID: w.DisciplineID,
			RoleID:       w.RoleID,
		}
		if w.RoleDesignation != nil {
			hourly.RoleDesignation = *w.RoleDesignation
		}
		if w.HourlyRate != nil {
			hourly.HourlyRate = *w.HourlyRate
		}
		if w.Hours != nil {
			hourly.Hours = *w.Hours
		}
		return types.FeeKindHourly, nil, hourly
	default:
		return types.FeeKindUnset, nil, nil
	}
}

func feeToWire(f types.FeeComponent) feeWire {
	w := variantToWire(f.ID, f.Name, f.Kind, f.Simple, f.Hourly)
	if len(f.Subcomponents) > 0 {
		w.Subcomponents = make([]feeWire, len(f.Subcomponents))
		for i, sub := range f.Subcomponents {
			w.Subcomponents[i] = variantToWire(sub.ID, sub.Name, sub.Kind, sub.Simple, sub.Hourly)
		}
	}
	return w
}

func variantToWire(id, name string, kind types.FeeKind, simple *types.SimpleFee, hourly *types.HourlyFee) feeWire {
	w := feeWire{ID: id, Name: name, Type: string(kind)}
	switch {
	case kind == types.FeeKindSimple && simple != nil:
		amount := simple.Amount
		w.Amount = &amount
		if simple.Quantity != nil {
			q := *simple.Quantity
			w.Quantity = &q
		}
		w.Description = simple.Description
	case kind == types.FeeKindHourly && hourly != nil:
		w.DisciplineID = hourly.DisciplineID
		w.RoleID = hourly.RoleID
		if hourly.RoleDesignation != "" {
			designation := hourly.RoleDesignation
			w.RoleDesignation = &designation
		}
		rate := hourly.HourlyRate
		w.HourlyRate = &rate
		hours := hourly.Hours
		w.Hours = &hours
	}
	return w
}
