package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used by stored records.
const DateLayout = "2006-01-02"

// InspectionStatus enumerates the outcome of a physical check on an item.
type InspectionStatus string

const (
	InspectionPassed  InspectionStatus = "passed"
	InspectionFailed  InspectionStatus = "failed"
	InspectionPending InspectionStatus = "pending"
)

// IsValid reports whether the status is one of the known values.
func (s InspectionStatus) IsValid() bool {
	switch s {
	case InspectionPassed, InspectionFailed, InspectionPending:
		return true
	}
	return false
}

// InventoryItem is a registered track fitting identified by its QR tag.
type InventoryItem struct {
	QRID             string           `bson:"qr_id" json:"qrId"`
	Vendor           string           `bson:"vendor" json:"vendor"`
	LotNumber        string           `bson:"lot_number" json:"lotNumber"`
	ItemType         string           `bson:"item_type" json:"itemType"`
	ManufactureDate  string           `bson:"manufacture_date" json:"manufactureDate"`
	SupplyDate       string           `bson:"supply_date" json:"supplyDate"`
	WarrantyExpiry   string           `bson:"warranty_expiry" json:"warrantyExpiry"`
	InspectionStatus InspectionStatus `bson:"inspection_status" json:"inspectionStatus"`
	Location         string           `bson:"location" json:"location"`
}

// WarrantyExpiryTime parses the warranty expiry date.
func (i InventoryItem) WarrantyExpiryTime() (time.Time, error) {
	return ParseDate(i.WarrantyExpiry)
}

// SupplyTime parses the supply date.
func (i InventoryItem) SupplyTime() (time.Time, error) {
	return ParseDate(i.SupplyDate)
}

// Zone returns the location prefix before " - ", e.g. "Zone A" for "Zone A - Track 1".
func (i InventoryItem) Zone() string {
	zone, _, _ := strings.Cut(i.Location, " - ")
	return strings.TrimSpace(zone)
}

// InventoryFilter narrows an inventory listing. Empty fields match everything.
type InventoryFilter struct {
	Search   string
	Vendor   string
	ItemType string
	Status   InspectionStatus
}

// Matches reports whether the item satisfies every filter criterion.
func (f InventoryFilter) Matches(item InventoryItem) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.QRID), term) &&
			!strings.Contains(strings.ToLower(item.Vendor), term) &&
			!strings.Contains(strings.ToLower(item.LotNumber), term) {
			return false
		}
	}
	if f.Vendor != "" && item.Vendor != f.Vendor {
		return false
	}
	if f.ItemType != "" && item.ItemType != f.ItemType {
		return false
	}
	if f.Status != "" && item.InspectionStatus != f.Status {
		return false
	}
	return true
}

// ParseDate parses a YYYY-MM-DD date, ignoring any time suffix.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	return time.Parse(DateLayout, value)
}
