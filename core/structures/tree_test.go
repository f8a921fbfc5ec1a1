package structures

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"proposal-cost/core/types"
)

func buildingWithLevels(name string, levelNames ...string) types.Structure {
	s := types.Structure{
		ID:            types.NewID(),
		Name:          name,
		DuplicateRate: decimal.NewFromInt(1),
	}
	for _, ln := range levelNames {
		s.Levels = append(s.Levels, types.Level{
			ID:   types.NewID(),
			Name: ln,
			Spaces: []types.Space{
				{ID: types.NewID(), Name: ln + " Lobby"},
			},
		})
	}
	return s
}

func strPtr(s string) *string { return &s }

func TestUpdateStructureUnknownID(t *testing.T) {
	tree := New([]types.Structure{buildingWithLevels("Tower A", "Ground")})

	next, changed := tree.UpdateStructure("missing", Patch{Name: strPtr("Other")})
	if changed {
		t.Fatal("expected no-op for unknown id")
	}
	if next != tree {
		t.Error("no-op should return the same snapshot")
	}
}

func TestUpdateStructureDoesNotMutateReceiver(t *testing.T) {
	orig := buildingWithLevels("Tower A", "Ground")
	tree := New([]types.Structure{orig})

	_, changed := tree.UpdateStructure(orig.ID, Patch{Name: strPtr("Tower B")})
	if !changed {
		t.Fatal("expected update to apply")
	}

	got, _ := tree.Find(orig.ID)
	if got.Name != "Tower A" {
		t.Errorf("receiver mutated: name = %q", got.Name)
	}
}

func TestUpdateStructureNamePropagatesToDuplicates(t *testing.T) {
	parent := buildingWithLevels("Tower A", "Ground")
	tree := New([]types.Structure{parent})
	tree, _ = tree.Duplicate(parent.ID)
	tree, _ = tree.Duplicate(parent.ID)

	tree, changed := tree.UpdateStructure(parent.ID, Patch{Name: strPtr("Tower B")})
	if !changed {
		t.Fatal("expected update to apply")
	}

	list := tree.Structures()
	if len(list) != 3 {
		t.Fatalf("expected 3 structures, got %d", len(list))
	}
	want := []string{"Tower B", "Tower B (Duplicate 1)", "Tower B (Duplicate 2)"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("structure %d: name = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestUpdateStructureLevelsPropagateNamesOnly(t *testing.T) {
	parent := buildingWithLevels("Tower A", "Ground", "Mezzanine")
	tree := New([]types.Structure{parent})
	tree, _ = tree.Duplicate(parent.ID)

	// Give the duplicate its own construction costs; a level remap must
	// not disturb them.
	dupID := tree.Structures()[1].ID
	dup, _ := tree.Find(dupID)
	dup.Levels[0].Spaces[0].ConstructionCosts = map[string]decimal.Decimal{
		"shell": decimal.NewFromInt(5000),
	}
	tree, _ = tree.UpdateStructure(dupID, Patch{Levels: dup.Levels})

	renamed := types.CloneLevels(parent.Levels)
	renamed[0].Name = "Basement"
	renamed[0].Spaces[0].Name = "Parking"
	tree, _ = tree.UpdateStructure(parent.ID, Patch{Levels: renamed})

	got, _ := tree.Find(dupID)
	if got.Levels[0].Name != "Basement" {
		t.Errorf("duplicate level name = %q, want %q", got.Levels[0].Name, "Basement")
	}
	if got.Levels[0].Spaces[0].Name != "Parking" {
		t.Errorf("duplicate space name = %q, want %q", got.Levels[0].Spaces[0].Name, "Parking")
	}
	if got.Levels[0].ID == parent.Levels[0].ID {
		t.Error("duplicate must keep its own level ids")
	}
	cost := got.Levels[0].Spaces[0].ConstructionCosts["shell"]
	if !cost.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("duplicate construction cost = %s, want 5000", cost)
	}
}

func TestUpdateStructureLevelRemapIgnoresExtraIndices(t *testing.T) {
	parent := buildingWithLevels("Tower A", "Ground", "Roof")
	tree := New([]types.Structure{parent})
	tree, _ = tree.Duplicate(parent.ID)
	dupID := tree.Structures()[1].ID

	// Parent grows a third level; the duplicate still has two. The remap
	// walks the overlap only, so the duplicate neither gains the new
	// level nor loses anything.
	grown := types.CloneLevels(parent.Levels)
	grown = append(grown, types.Level{ID: types.NewID(), Name: "Penthouse"})
	tree, _ = tree.UpdateStructure(parent.ID, Patch{Levels: grown})

	got, _ := tree.Find(dupID)
	if len(got.Levels) != 2 {
		t.Fatalf("duplicate level count = %d, want 2", len(got.Levels))
	}
	if got.Levels[1].Name != "Roof" {
		t.Errorf("duplicate level 1 = %q, want %q", got.Levels[1].Name, "Roof")
	}
}

func TestAddStructureAssignsFreshID(t *testing.T) {
	tree := New(nil)
	s := buildingWithLevels("Tower A", "Ground")
	oldID := s.ID

	tree, id := tree.AddStructure(s)
	if id == "" || id == oldID {
		t.Errorf("expected a fresh id, got %q", id)
	}
	if tree.Len() != 1 {
		t.Fatalf("len = %d, want 1", tree.Len())
	}
	if _, ok := tree.Find(id); !ok {
		t.Error("added structure not found by assigned id")
	}
}

func TestRemoveStructureCascadesToDuplicates(t *testing.T) {
	parent := buildingWithLevels("Tower A", "Ground")
	other := buildingWithLevels("Annex", "Ground")
	tree := New([]types.Structure{parent, other})
	tree, _ = tree.Duplicate(parent.ID)
	tree, _ = tree.Duplicate(parent.ID)

	tree, changed := tree.RemoveStructure(parent.ID)
	if !changed {
		t.Fatal("expected removal to apply")
	}
	if tree.Len() != 1 {
		t.Fatalf("len = %d, want 1 (duplicates must cascade)", tree.Len())
	}
	if tree.Structures()[0].ID != other.ID {
		t.Error("unrelated structure should survive the cascade")
	}
}

func TestRemoveDuplicateRenumbersSiblings(t *testing.T) {
	parent := buildingWithLevels("Tower A", "Ground")
	tree := New([]types.Structure{parent})
	tree, _ = tree.Duplicate(parent.ID)
	tree, _ = tree.Duplicate(parent.ID)
	tree, _ = tree.Duplicate(parent.ID)

	secondID := tree.Structures()[2].ID
	tree, changed := tree.RemoveStructure(secondID)
	if !changed {
		t.Fatal("expected removal to apply")
	}

	list := tree.Structures()
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}

	cases := []struct {
		index    int
		number   int
		name     string
		rate     string
	}{
		{1, 1, "Tower A (Duplicate 1)", "1"},
		{2, 2, "Tower A (Duplicate 2)", "0.75"},
	}
	for _, tc := range cases {
		got := list[tc.index]
		if got.DuplicateNumber != tc.number {
			t.Errorf("index %d: number = %d, want %d", tc.index, got.DuplicateNumber, tc.number)
		}
		if got.Name != tc.name {
			t.Errorf("index %d: name = %q, want %q", tc.index, got.Name, tc.name)
		}
		if !got.DuplicateRate.Equal(decimal.RequireFromString(tc.rate)) {
			t.Errorf("index %d: rate = %s, want %s", tc.index, got.DuplicateRate, tc.rate)
		}
	}
}

func TestRemoveDuplicateRenumbersByOriginalNumber(t *testing.T) {
	// SetStructures performs no validation, so a hydrated record can
	// store a duplicate group out of list order. Renumbering must follow
	// the original numbers, not the list positions.
	parent := buildingWithLevels("Tower A", "Ground")
	dup := func(n int) types.Structure {
		return types.Structure{
			ID:                fmt.Sprintf("dup-%d", n),
			Name:              duplicateName("Tower A", n),
			IsDuplicate:       true,
			DuplicateNumber:   n,
			DuplicateParentID: parent.ID,
			DuplicateRate:     RateForDuplicate(n),
		}
	}
	tree := New([]types.Structure{parent, dup(2), dup(1), dup(3)})

	tree, changed := tree.RemoveStructure("dup-3")
	if !changed {
		t.Fatal("expected removal to apply")
	}

	byID := make(map[string]types.Structure)
	for _, s := range tree.Structures() {
		byID[s.ID] = s
	}
	cases := []struct {
		id     string
		number int
		name   string
		rate   string
	}{
		{"dup-1", 1, "Tower A (Duplicate 1)", "1"},
		{"dup-2", 2, "Tower A (Duplicate 2)", "0.75"},
	}
	for _, tc := range cases {
		got, ok := byID[tc.id]
		if !ok {
			t.Fatalf("%s missing after renumber", tc.id)
		}
		if got.DuplicateNumber != tc.number {
			t.Errorf("%s: number = %d, want %d", tc.id, got.DuplicateNumber, tc.number)
		}
		if got.Name != tc.name {
			t.Errorf("%s: name = %q, want %q", tc.id, got.Name, tc.name)
		}
		if !got.DuplicateRate.Equal(decimal.RequireFromString(tc.rate)) {
			t.Errorf("%s: rate = %s, want %s", tc.id, got.DuplicateRate, tc.rate)
		}
	}
}

func TestRemoveStructureUnknownID(t *testing.T) {
	tree := New([]types.Structure{buildingWithLevels("Tower A", "Ground")})
	next, changed := tree.RemoveStructure("missing")
	if changed {
		t.Fatal("expected no-op for unknown id")
	}
	if next.Len() != 1 {
		t.Errorf("len = %d, want 1", next.Len())
	}
}

func TestRateForDuplicate(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "1"},
		{2, "0.75"},
		{3, "0.5625"},
		{4, "0.421875"},
		{0, "1"},
	}
	for _, tc := range cases {
		got := RateForDuplicate(tc.n)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("RateForDuplicate(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}
