package domain

import "testing"

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapVerifyLoan, true},
		{RoleAdmin, CapReturnLoan, true},
		{RoleAdmin, CapManageUsers, false},
		{RoleVerificator, CapApproveLoan, true},
		{RoleVerificator, CapVerifyLoan, false},
		{RoleVerificator, CapReturnLoan, false},
		{RoleVerificator, CapManageItems, false},
		{RoleSuperAdmin, CapManageUsers, true},
		{RoleSuperAdmin, CapManageConfig, true},
		{RoleBorrower, CapViewAllLoans, false},
	}
	for _, tc := range cases {
		if got := tc.role.Can(tc.cap); got != tc.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}

func TestRoleHelpers(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleVerificator, RoleSuperAdmin} {
		if !r.IsStaff() {
			t.Errorf("%s.IsStaff() = false", r)
		}
	}
	if RoleBorrower.IsStaff() {
		t.Error("Borrower must not be staff")
	}
	if Role("Janitor").Valid() {
		t.Error("unknown role must not be valid")
	}
}

func TestItemClamping(t *testing.T) {
	item := Item{TotalQuantity: 5, AvailableQuantity: 2}

	item.DecrementAvailable(10)
	if item.AvailableQuantity != 0 || item.Status != ItemStatusOutOfStock {
		t.Errorf("after big decrement: %+v", item)
	}

	item.IncrementAvailable(100)
	if item.AvailableQuantity != 5 || item.Status != ItemStatusReady {
		t.Errorf("after big increment: %+v", item)
	}
}
