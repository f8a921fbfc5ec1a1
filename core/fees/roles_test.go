package fees

import (
	"testing"

	"proposal-cost/core/rates"
	"proposal-cost/core/types"
)

func rateTable() *rates.Table {
	return rates.NewTable([]types.HourlyRate{
		{Key: types.RateKey{DisciplineID: "arch", RoleID: "principal"}, Rate: dec("250")},
		{Key: types.RateKey{DisciplineID: "arch", RoleID: "drafter", Designation: "senior"}, Rate: dec("145")},
	})
}

func TestUpdateFeeWithRole(t *testing.T) {
	fee := types.FeeComponent{
		ID:     types.NewID(),
		Kind:   types.FeeKindHourly,
		Hourly: &types.HourlyFee{DisciplineID: "arch", Hours: dec("20")},
	}
	e, catID := editorWith(fee)

	e, ok := e.UpdateFeeWithRole(rateTable(), catID, fee.ID, "principal", "")
	if !ok {
		t.Fatal("expected the role to resolve")
	}
	got := e.Categories()[0].Fees[0]
	if got.Hourly.RoleID != "principal" {
		t.Errorf("role = %q", got.Hourly.RoleID)
	}
	if !got.Hourly.HourlyRate.Equal(dec("250")) {
		t.Errorf("rate = %s, want 250", got.Hourly.HourlyRate)
	}
	if !got.Hourly.Hours.Equal(dec("20")) {
		t.Error("hours must survive the role change")
	}
	if got.Kind != types.FeeKindHourly || got.Simple != nil {
		t.Error("resolution must leave the component hourly")
	}
}

func TestUpdateFeeWithRoleDesignation(t *testing.T) {
	fee := types.FeeComponent{
		ID:     types.NewID(),
		Kind:   types.FeeKindHourly,
		Hourly: &types.HourlyFee{DisciplineID: "arch"},
	}
	e, catID := editorWith(fee)

	e, ok := e.UpdateFeeWithRole(rateTable(), catID, fee.ID, "drafter", "senior")
	if !ok {
		t.Fatal("expected the designated role to resolve")
	}
	got := e.Categories()[0].Fees[0].Hourly
	if got.RoleDesignation != "senior" || !got.HourlyRate.Equal(dec("145")) {
		t.Errorf("got designation=%q rate=%s", got.RoleDesignation, got.HourlyRate)
	}
}

func TestUpdateFeeWithRoleMissIsNoOp(t *testing.T) {
	fee := types.FeeComponent{
		ID:   types.NewID(),
		Kind: types.FeeKindHourly,
		Hourly: &types.HourlyFee{
			DisciplineID: "arch",
			RoleID:       "principal",
			HourlyRate:   dec("250"),
		},
	}
	e, catID := editorWith(fee)

	// No matching table row: the component keeps its previous rate.
	next, ok := e.UpdateFeeWithRole(rateTable(), catID, fee.ID, "intern", "")
	if ok {
		t.Fatal("unknown role must be a no-op")
	}
	got := next.Categories()[0].Fees[0].Hourly
	if got.RoleID != "principal" || !got.HourlyRate.Equal(dec("250")) {
		t.Errorf("miss changed the component: %+v", got)
	}
}

func TestUpdateFeeWithRoleRequiresDiscipline(t *testing.T) {
	fee := types.FeeComponent{
		ID:     types.NewID(),
		Kind:   types.FeeKindHourly,
		Hourly: &types.HourlyFee{},
	}
	e, catID := editorWith(fee)

	if _, ok := e.UpdateFeeWithRole(rateTable(), catID, fee.ID, "principal", ""); ok {
		t.Error("a line without a discipline must never resolve")
	}
	if _, ok := e.UpdateFeeWithRole(nil, catID, fee.ID, "principal", ""); ok {
		t.Error("a nil table must never resolve")
	}
}

func TestUpdateSubWithRole(t *testing.T) {
	fee := types.FeeComponent{
		ID: types.NewID(),
		Subcomponents: []types.FeeSubcomponent{
			{
				ID:     "sub",
				Kind:   types.FeeKindHourly,
				Hourly: &types.HourlyFee{DisciplineID: "arch", Hours: dec("8")},
			},
		},
	}
	e, catID := editorWith(fee)

	e, ok := e.UpdateSubWithRole(rateTable(), catID, fee.ID, "sub", "principal", "")
	if !ok {
		t.Fatal("expected the role to resolve")
	}
	got := e.Categories()[0].Fees[0].Subcomponents[0].Hourly
	if got.RoleID != "principal" || !got.HourlyRate.Equal(dec("250")) {
		t.Errorf("got role=%q rate=%s", got.RoleID, got.HourlyRate)
	}
}
