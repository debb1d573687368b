package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
)

// ErrInvalidStatus indicates an unknown inspection status filter.
var ErrInvalidStatus = errors.New("invalid inspection status")

const exportSheet = "Inventory"

var exportHeadings = []string{
	"QR ID", "Vendor", "Lot Number", "Item Type", "Manufacture Date",
	"Supply Date", "Warranty Expiry", "Inspection Status", "Location",
}

// Listing is a filtered inventory view plus the options for its filter drop-downs.
type Listing struct {
	Items     []models.InventoryItem `json:"items"`
	Total     int                    `json:"total"`
	Vendors   []string               `json:"vendors"`
	ItemTypes []string               `json:"itemTypes"`
}

// Service exposes inventory queries and exports.
type Service struct {
	repo   repository.InventoryRepository
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(repo repository.InventoryRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns the items matching the filter.
func (s *Service) List(ctx context.Context, filter models.InventoryFilter) (Listing, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return Listing{}, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
	}

	all, err := s.repo.ListInventory(ctx, models.InventoryFilter{})
	if err != nil {
		return Listing{}, fmt.Errorf("load inventory: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(all))
	for _, item := range all {
		if filter.Matches(item) {
			items = append(items, item)
		}
	}

	return Listing{
		Items:     items,
		Total:     len(items),
		Vendors:   distinct(all, func(i models.InventoryItem) string { return i.Vendor }),
		ItemTypes: distinct(all, func(i models.InventoryItem) string { return i.ItemType }),
	}, nil
}

// Export writes the filtered inventory as an XLSX workbook.
func (s *Service) Export(ctx context.Context, filter models.InventoryFilter, w io.Writer) error {
	listing, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Debug("close workbook", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for col, heading := range exportHeadings {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(exportSheet, cell, heading); err != nil {
			return fmt.Errorf("write heading: %w", err)
		}
	}

	for i, item := range listing.Items {
		row := []interface{}{
			item.QRID, item.Vendor, item.LotNumber, item.ItemType, item.ManufactureDate,
			item.SupplyDate, item.WarrantyExpiry, string(item.InspectionStatus), item.Location,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Debug("inventory exported", zap.Int("rows", len(listing.Items)))
	return nil
}

func distinct(items []models.InventoryItem, key func(models.InventoryItem) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
