package domain

import "testing"

func TestSubscriptionStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to SubscriptionStatus
		want     bool
	}{
		{SubscriptionActive, SubscriptionPastDue, true},
		{SubscriptionActive, SubscriptionCancelled, true},
		{SubscriptionPastDue, SubscriptionActive, true},
		{SubscriptionPastDue, SubscriptionCancelled, true},
		{SubscriptionCancelled, SubscriptionActive, false},
		{SubscriptionCancelled, SubscriptionPastDue, false},
		{SubscriptionActive, SubscriptionActive, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestRole_Permissions(t *testing.T) {
	if perms := RoleCashier.Permissions(); len(perms) != 1 || perms[0] != PermProcessSales {
		t.Fatalf("unexpected cashier permissions: %v", perms)
	}

	owner := RoleBusinessOwner.Permissions()
	for _, p := range owner {
		if p == PermManageSubscriptions {
			t.Fatalf("business owner must not hold MANAGE_SUBSCRIPTIONS")
		}
	}
}

func TestParseRole_RejectsUnknown(t *testing.T) {
	if _, err := ParseRole("cashier"); err == nil {
		t.Fatalf("lowercase role must be rejected")
	}
	if r, err := ParseRole("SHOP_MANAGER"); err != nil || r != RoleShopManager {
		t.Fatalf("expected SHOP_MANAGER, got %v (%v)", r, err)
	}
}
