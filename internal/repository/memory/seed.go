package memory

import "github.com/mamadbah2/railfit/internal/domain/models"

// DemoInventory returns the sample fittings shown on a fresh dashboard.
func DemoInventory() []models.InventoryItem {
	return []models.InventoryItem{
		{QRID: "QR-2024-001", Vendor: "RailTech Solutions", LotNumber: "LOT-RT-001", ItemType: "Elastic Rail Clip", ManufactureDate: "2023-06-15", SupplyDate: "2023-07-01", WarrantyExpiry: "2025-07-01", InspectionStatus: models.InspectionPassed, Location: "Zone A - Track 1"},
		{QRID: "QR-2024-002", Vendor: "TrackFit Industries", LotNumber: "LOT-TF-045", ItemType: "Rail Pad", ManufactureDate: "2023-08-20", SupplyDate: "2023-09-05", WarrantyExpiry: "2024-09-05", InspectionStatus: models.InspectionFailed, Location: "Zone B - Track 3"},
		{QRID: "QR-2024-003", Vendor: "SteelRail Corp", LotNumber: "LOT-SR-089", ItemType: "Concrete Sleeper", ManufactureDate: "2023-05-10", SupplyDate: "2023-06-15", WarrantyExpiry: "2027-06-15", InspectionStatus: models.InspectionPassed, Location: "Zone C - Track 2"},
		{QRID: "QR-2024-004", Vendor: "FlexiTrack Ltd", LotNumber: "LOT-FL-023", ItemType: "Rail Liner", ManufactureDate: "2023-09-12", SupplyDate: "2023-10-01", WarrantyExpiry: "2025-10-01", InspectionStatus: models.InspectionPending, Location: "Zone A - Track 4"},
		{QRID: "QR-2024-005", Vendor: "DuraRail Systems", LotNumber: "LOT-DR-156", ItemType: "Elastic Rail Clip", ManufactureDate: "2023-07-08", SupplyDate: "2023-08-15", WarrantyExpiry: "2025-08-15", InspectionStatus: models.InspectionPassed, Location: "Zone B - Track 1"},
	}
}

// DemoUsers returns the sample accounts shown on a fresh dashboard.
func DemoUsers() []models.User {
	return []models.User{
		{ID: "1", Name: "John Smith", Email: "john.smith@railtech.com", Phone: "+1-555-0123", Role: models.RoleVendor, Company: "RailTech Solutions", Status: models.UserActive, JoinDate: "2023-01-15"},
		{ID: "2", Name: "Sarah Johnson", Email: "sarah.j@trackfit.com", Phone: "+1-555-0124", Role: models.RoleVendor, Company: "TrackFit Industries", Status: models.UserActive, JoinDate: "2023-02-20"},
		{ID: "3", Name: "Mike Chen", Email: "m.chen@railway-inspect.gov", Phone: "+1-555-0125", Role: models.RoleInspector, Company: "Railway Authority", Status: models.UserActive, JoinDate: "2023-03-10"},
		{ID: "4", Name: "Emily Davis", Email: "emily.davis@steelrail.com", Phone: "+1-555-0126", Role: models.RoleVendor, Company: "SteelRail Corp", Status: models.UserActive, JoinDate: "2023-04-05"},
		{ID: "5", Name: "Robert Wilson", Email: "r.wilson@railway-inspect.gov", Phone: "+1-555-0127", Role: models.RoleInspector, Company: "Railway Authority", Status: models.UserInactive, JoinDate: "2023-05-12"},
	}
}
