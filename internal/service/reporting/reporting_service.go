package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
)

const (
	recentActivityLimit = 5
	monthLayout         = "2006-01"
)

var defectAlertThreshold = decimal.NewFromInt(5)

// Service computes dashboard KPIs and chart data from the inventory.
type Service struct {
	inventory repository.InventoryRepository
	users     repository.UserRepository
	alertDays int
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(inventory repository.InventoryRepository, users repository.UserRepository, alertDays int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if alertDays <= 0 {
		alertDays = 30
	}
	return &Service{inventory: inventory, users: users, alertDays: alertDays, logger: logger, now: time.Now}
}

// AlertDays is the warranty alert window.
func (s *Service) AlertDays() int {
	return s.alertDays
}

// Overview builds the landing page KPIs.
func (s *Service) Overview(ctx context.Context) (models.Overview, error) {
	items, err := s.loadInventory(ctx)
	if err != nil {
		return models.Overview{}, err
	}
	users, err := s.users.ListUsers(ctx, models.UserFilter{})
	if err != nil {
		return models.Overview{}, fmt.Errorf("load users: %w", err)
	}

	var passed, pending int
	vendors := make(map[string]struct{})
	for _, item := range items {
		vendors[item.Vendor] = struct{}{}
		switch item.InspectionStatus {
		case models.InspectionPassed:
			passed++
		case models.InspectionPending:
			pending++
		}
	}

	activeUsers := 0
	for _, u := range users {
		if u.Status == models.UserActive {
			activeUsers++
		}
	}

	expiring := s.expiring(items)

	overview := models.Overview{
		TotalItems:       len(items),
		ActiveVendors:    len(vendors),
		ActiveUsers:      activeUsers,
		PassRate:         percent(passed, len(items)),
		ExpiringWarranty: len(expiring),
		RecentActivity:   recentActivity(items),
		Alerts:           []models.Alert{},
	}

	if len(expiring) > 0 {
		overview.Alerts = append(overview.Alerts, models.Alert{
			Type:     "warranty",
			Message:  fmt.Sprintf("%d items have warranty expiring within %d days", len(expiring), s.alertDays),
			Severity: models.SeverityWarning,
		})
	}
	if worst, ok := worstVendor(vendorDefects(items)); ok && worst.DefectRate.GreaterThan(defectAlertThreshold) {
		overview.Alerts = append(overview.Alerts, models.Alert{
			Type:     "defect",
			Message:  fmt.Sprintf("%s shows %s%% defect rate", worst.Vendor, worst.DefectRate.StringFixed(1)),
			Severity: models.SeverityHigh,
		})
	}
	if pending > 0 {
		overview.Alerts = append(overview.Alerts, models.Alert{
			Type:     "inspection",
			Message:  fmt.Sprintf("%d items pending inspection", pending),
			Severity: models.SeverityMedium,
		})
	}

	return overview, nil
}

// Analytics builds the chart rows of the analytics page.
func (s *Service) Analytics(ctx context.Context) (models.Analytics, error) {
	items, err := s.loadInventory(ctx)
	if err != nil {
		return models.Analytics{}, err
	}

	return models.Analytics{
		VendorDefects:    vendorDefects(items),
		WarrantyExpiry:   s.warrantyBuckets(items),
		InspectionStatus: statusBuckets(items),
		InspectionTrends: s.trends(items),
		Zones:            zoneStats(items),
	}, nil
}

// ExpiringWarranties returns the items whose warranty ends within the alert window.
func (s *Service) ExpiringWarranties(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.loadInventory(ctx)
	if err != nil {
		return nil, err
	}
	return s.expiring(items), nil
}

func (s *Service) loadInventory(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.inventory.ListInventory(ctx, models.InventoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	return items, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// daysUntilExpiry reports whole days from today to the warranty end.
func (s *Service) daysUntilExpiry(item models.InventoryItem) (int, bool) {
	expiry, err := item.WarrantyExpiryTime()
	if err != nil {
		s.logger.Debug("skip item with invalid warranty date", zap.String("qr_id", item.QRID), zap.Error(err))
		return 0, false
	}
	return int(expiry.Sub(s.today()).Hours() / 24), true
}

func (s *Service) expiring(items []models.InventoryItem) []models.InventoryItem {
	out := make([]models.InventoryItem, 0)
	for _, item := range items {
		days, ok := s.daysUntilExpiry(item)
		if ok && days >= 0 && days <= s.alertDays {
			out = append(out, item)
		}
	}
	return out
}

func (s *Service) warrantyBuckets(items []models.InventoryItem) []models.Bucket {
	buckets := []models.Bucket{
		{Name: "Expired"},
		{Name: "Within 30 days"},
		{Name: "31-90 days"},
		{Name: "91-365 days"},
		{Name: "1-2 years"},
		{Name: "2+ years"},
	}
	for _, item := range items {
		days, ok := s.daysUntilExpiry(item)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			buckets[0].Value++
		case days <= 30:
			buckets[1].Value++
		case days <= 90:
			buckets[2].Value++
		case days <= 365:
			buckets[3].Value++
		case days <= 730:
			buckets[4].Value++
		default:
			buckets[5].Value++
		}
	}
	return buckets
}

func (s *Service) trends(items []models.InventoryItem) []models.InspectionTrend {
	byMonth := make(map[string]*models.InspectionTrend)
	for _, item := range items {
		supplied, err := item.SupplyTime()
		if err != nil {
			s.logger.Debug("skip item with invalid supply date", zap.String("qr_id", item.QRID), zap.Error(err))
			continue
		}
		month := supplied.Format(monthLayout)
		trend, ok := byMonth[month]
		if !ok {
			trend = &models.InspectionTrend{Month: month}
			byMonth[month] = trend
		}
		switch item.InspectionStatus {
		case models.InspectionPassed:
			trend.Passed++
		case models.InspectionFailed:
			trend.Failed++
		case models.InspectionPending:
			trend.Pending++
		}
	}

	out := make([]models.InspectionTrend, 0, len(byMonth))
	for _, trend := range byMonth {
		out = append(out, *trend)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func statusBuckets(items []models.InventoryItem) []models.Bucket {
	buckets := []models.Bucket{{Name: "Passed"}, {Name: "Failed"}, {Name: "Pending"}}
	for _, item := range items {
		switch item.InspectionStatus {
		case models.InspectionPassed:
			buckets[0].Value++
		case models.InspectionFailed:
			buckets[1].Value++
		case models.InspectionPending:
			buckets[2].Value++
		}
	}
	return buckets
}

func vendorDefects(items []models.InventoryItem) []models.VendorDefect {
	byVendor := make(map[string]*models.VendorDefect)
	order := make([]string, 0)
	for _, item := range items {
		v, ok := byVendor[item.Vendor]
		if !ok {
			v = &models.VendorDefect{Vendor: item.Vendor}
			byVendor[item.Vendor] = v
			order = append(order, item.Vendor)
		}
		v.Total++
		if item.InspectionStatus == models.InspectionFailed {
			v.Failed++
		}
	}

	out := make([]models.VendorDefect, 0, len(order))
	for _, name := range order {
		v := byVendor[name]
		v.DefectRate = percent(v.Failed, v.Total)
		out = append(out, *v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].DefectRate.Cmp(out[j].DefectRate); c != 0 {
			return c > 0
		}
		return out[i].Vendor < out[j].Vendor
	})
	return out
}

func worstVendor(defects []models.VendorDefect) (models.VendorDefect, bool) {
	if len(defects) == 0 {
		return models.VendorDefect{}, false
	}
	return defects[0], true
}

func zoneStats(items []models.InventoryItem) []models.ZoneStat {
	byZone := make(map[string]*models.ZoneStat)
	for _, item := range items {
		zone := item.Zone()
		if zone == "" {
			continue
		}
		z, ok := byZone[zone]
		if !ok {
			z = &models.ZoneStat{Zone: zone}
			byZone[zone] = z
		}
		z.Total++
		if item.InspectionStatus == models.InspectionFailed {
			z.Defects++
		}
	}

	out := make([]models.ZoneStat, 0, len(byZone))
	for _, z := range byZone {
		out = append(out, *z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out
}

func recentActivity(items []models.InventoryItem) []models.RecentActivity {
	sorted := make([]models.InventoryItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SupplyDate > sorted[j].SupplyDate })

	if len(sorted) > recentActivityLimit {
		sorted = sorted[:recentActivityLimit]
	}
	out := make([]models.RecentActivity, 0, len(sorted))
	for _, item := range sorted {
		out = append(out, models.RecentActivity{
			QRID:     item.QRID,
			Vendor:   item.Vendor,
			ItemType: item.ItemType,
			Date:     item.SupplyDate,
		})
	}
	return out
}

// percent returns part/total*100 rounded to one decimal place.
func percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 1)
}
