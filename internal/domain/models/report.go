package models

import "github.com/shopspring/decimal"

// Charts read rates as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Overview aggregates the KPI cards of the dashboard landing page.
type Overview struct {
	TotalItems       int              `json:"totalItems"`
	ActiveVendors    int              `json:"activeVendors"`
	ActiveUsers      int              `json:"activeUsers"`
	PassRate         decimal.Decimal  `json:"passRate"`
	ExpiringWarranty int              `json:"expiringWarranty"`
	RecentActivity   []RecentActivity `json:"recentActivity"`
	Alerts           []Alert          `json:"alerts"`
}

// RecentActivity is one of the latest registered items.
type RecentActivity struct {
	QRID     string `json:"id"`
	Vendor   string `json:"vendor"`
	ItemType string `json:"item"`
	Date     string `json:"date"`
}

// AlertSeverity ranks dashboard alerts.
type AlertSeverity string

const (
	SeverityHigh    AlertSeverity = "high"
	SeverityMedium  AlertSeverity = "medium"
	SeverityWarning AlertSeverity = "warning"
)

// Alert is a human-readable notice raised from inventory data.
type Alert struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Severity AlertSeverity `json:"severity"`
}

// Analytics bundles the chart rows of the analytics page.
type Analytics struct {
	VendorDefects    []VendorDefect    `json:"vendorDefects"`
	WarrantyExpiry   []Bucket          `json:"warrantyExpiry"`
	InspectionStatus []Bucket          `json:"inspectionStatus"`
	InspectionTrends []InspectionTrend `json:"inspectionTrends"`
	Zones            []ZoneStat        `json:"zones"`
}

// VendorDefect is the failed-inspection percentage for a vendor.
type VendorDefect struct {
	Vendor     string          `json:"vendor"`
	Total      int             `json:"total"`
	Failed     int             `json:"failed"`
	DefectRate decimal.Decimal `json:"defectRate"`
}

// Bucket is a labelled count.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// InspectionTrend counts inspection outcomes for items supplied in a month.
type InspectionTrend struct {
	Month   string `json:"month"`
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
	Pending int    `json:"pending"`
}

// ZoneStat counts failed items against all items in a zone.
type ZoneStat struct {
	Zone    string `json:"zone"`
	Defects int    `json:"defects"`
	Total   int    `json:"total"`
}
