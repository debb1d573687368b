package models

import "testing"

func TestInventoryFilterMatches(t *testing.T) {
	item := InventoryItem{
		QRID:             "QR-2024-001",
		Vendor:           "RailTech Solutions",
		LotNumber:        "LOT-RT-001",
		ItemType:         "Elastic Rail Clip",
		InspectionStatus: InspectionPassed,
		Location:         "Zone A - Track 1",
	}

	cases := []struct {
		name   string
		filter InventoryFilter
		want   bool
	}{
		{name: "empty", filter: InventoryFilter{}, want: true},
		{name: "search qr id", filter: InventoryFilter{Search: "qr-2024"}, want: true},
		{name: "search vendor", filter: InventoryFilter{Search: "railtech"}, want: true},
		{name: "search lot", filter: InventoryFilter{Search: "rt-001"}, want: true},
		{name: "search miss", filter: InventoryFilter{Search: "steel"}, want: false},
		{name: "search ignores location", filter: InventoryFilter{Search: "zone a"}, want: false},
		{name: "vendor exact", filter: InventoryFilter{Vendor: "RailTech Solutions"}, want: true},
		{name: "vendor is case sensitive", filter: InventoryFilter{Vendor: "railtech solutions"}, want: false},
		{name: "item type", filter: InventoryFilter{ItemType: "Rail Pad"}, want: false},
		{name: "status", filter: InventoryFilter{Status: InspectionPassed}, want: true},
		{name: "status miss", filter: InventoryFilter{Status: InspectionFailed}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(item); got != tc.want {
				t.Fatalf("Matches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUserFilterMatches(t *testing.T) {
	u := User{Name: "Mike Chen", Email: "m.chen@railway-inspect.gov", Company: "Railway Authority", Role: RoleInspector}

	if !(UserFilter{Search: "AUTHORITY"}).Matches(u) {
		t.Fatal("expected company search to match")
	}
	if (UserFilter{Role: RoleVendor}).Matches(u) {
		t.Fatal("expected role filter to exclude inspector")
	}
	if !(UserFilter{Search: "chen", Role: RoleInspector}).Matches(u) {
		t.Fatal("expected combined filter to match")
	}
}

func TestZone(t *testing.T) {
	cases := map[string]string{
		"Zone A - Track 1": "Zone A",
		"Depot":            "Depot",
		"":                 "",
	}
	for location, want := range cases {
		if got := (InventoryItem{Location: location}).Zone(); got != want {
			t.Fatalf("Zone(%q) = %q, want %q", location, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-07-01T00:00:00.000Z")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got.Format(DateLayout) != "2025-07-01" {
		t.Fatalf("ParseDate() = %v", got)
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("expected error for empty date")
	}
}

func TestEnumValidity(t *testing.T) {
	if !InspectionPending.IsValid() || InspectionStatus("unknown").IsValid() {
		t.Fatal("InspectionStatus.IsValid mismatch")
	}
	if !RoleAdmin.IsValid() || Role("guest").IsValid() {
		t.Fatal("Role.IsValid mismatch")
	}
}
