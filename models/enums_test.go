package models

import "testing"

func TestCanManageCollections(t *testing.T) {
	cases := []struct {
		role UserRole
		want bool
	}{
		{UserRoleAdmin, true},
		{UserRoleManager, true},
		{UserRoleDriver, false},
		{UserRoleStaff, false},
	}
	for _, tc := range cases {
		if got := tc.role.CanManageCollections(); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestParseEnumsRejectUnknown(t *testing.T) {
	if _, err := ParseUserRole("Owner"); err == nil {
		t.Errorf("ParseUserRole accepted unknown value")
	}
	if _, err := ParseOrderStatus("Shipped"); err == nil {
		t.Errorf("ParseOrderStatus accepted unknown value")
	}
	if _, err := ParsePaymentMethod("Card"); err == nil {
		t.Errorf("ParsePaymentMethod accepted unknown value")
	}
	if _, err := ParseCollectionType("cash"); err == nil {
		t.Errorf("ParseCollectionType accepted unknown value")
	}
	if _, err := ParseCollectionStatus("done"); err == nil {
		t.Errorf("ParseCollectionStatus accepted unknown value")
	}
}
