package certificate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository"
	"github.com/mamadbah2/railfit/internal/service/validation"
)

// ErrInvalidRequest wraps every problem with the submitted form data.
var ErrInvalidRequest = errors.New("invalid certificate request")

const (
	filePrefix = "railway-item-"
	fileSuffix = ".pdf"
	// maxNameAttempts bounds the search for a free timestamp when requests collide.
	maxNameAttempts = 1000
)

var filenamePattern = regexp.MustCompile(`^railway-item-(\d+)\.pdf$`)

// Issued describes a certificate written to disk.
type Issued struct {
	Filename  string
	Timestamp int64
}

// Service renders certificates into the uploads directory.
type Service struct {
	dir      string
	register repository.CertificateRepository
	validate *validator.Validate
	locale   Locale
	location *time.Location
	compress bool
	logger   *zap.Logger
	now      func() time.Time
}

// NewService ensures the uploads directory exists and wires the service.
// register may be nil, in which case issued certificates are not recorded.
func NewService(dir string, defaultLocale Locale, register repository.CertificateRepository, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", dir, err)
	}

	return &Service{
		dir:      dir,
		register: register,
		validate: validation.New(),
		locale:   defaultLocale,
		location: time.Local,
		compress: true,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Dir returns the uploads directory.
func (s *Service) Dir() string {
	return s.dir
}

// DefaultLocale returns the locale used when a request expresses no preference.
func (s *Service) DefaultLocale() Locale {
	return s.locale
}

// Issue validates the request, writes railway-item-<timestamp>.pdf and records it.
func (s *Service) Issue(ctx context.Context, req models.CertificateRequest, locale Locale) (Issued, error) {
	req = normalize(req)
	if err := s.validate.Struct(req); err != nil {
		return Issued{}, fmt.Errorf("%w: %s", ErrInvalidRequest, validation.Message(err))
	}
	if err := checkPrintable(
		field{Label: "vendorName", Value: req.VendorName},
		field{Label: "lotNumber", Value: req.LotNumber},
		field{Label: "itemType", Value: req.ItemType},
		field{Label: "warrantyPeriod", Value: req.WarrantyPeriod},
	); err != nil {
		return Issued{}, err
	}

	manufactured, err := s.parseOptionalDate("manufactureDate", req.ManufactureDate)
	if err != nil {
		return Issued{}, err
	}
	supplied, err := s.parseOptionalDate("supplyDate", req.SupplyDate)
	if err != nil {
		return Issued{}, err
	}

	createdAt := s.now()
	file, ts, err := s.claimFile(createdAt.UnixMilli())
	if err != nil {
		return Issued{}, err
	}
	filename := filepath.Base(file.Name())

	doc := document{
		Fields:      buildFields(req, manufactured, supplied, locale),
		GeneratedOn: locale.FormatDateTime(createdAt.In(s.location)),
		DocumentID:  ts,
		CreatedAt:   createdAt,
	}

	if err := renderPDF(file, doc, s.compress); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return Issued{}, err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return Issued{}, fmt.Errorf("close %s: %w", filename, err)
	}

	s.logger.Info("certificate issued",
		zap.String("filename", filename),
		zap.String("vendor", req.VendorName),
		zap.String("lot", req.LotNumber))

	s.record(ctx, models.Certificate{
		DocumentID:      ts,
		Filename:        filename,
		VendorName:      req.VendorName,
		LotNumber:       req.LotNumber,
		ItemType:        req.ItemType,
		ManufactureDate: dateOnly(manufactured),
		SupplyDate:      dateOnly(supplied),
		WarrantyPeriod:  req.WarrantyPeriod,
		CreatedAt:       createdAt.UTC(),
	})

	return Issued{Filename: filename, Timestamp: ts}, nil
}

// List returns the newest register entries.
func (s *Service) List(ctx context.Context, limit int) ([]models.Certificate, error) {
	if s.register == nil {
		return []models.Certificate{}, nil
	}
	return s.register.ListCertificates(ctx, limit)
}

// Sweep removes certificates older than maxAge and returns how many were deleted.
func (s *Service) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read uploads dir: %w", err)
	}

	cutoff := s.now().Add(-maxAge).UnixMilli()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := filenamePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		ts, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || ts >= cutoff {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to remove expired certificate", zap.String("filename", entry.Name()), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}

// claimFile creates the output file exclusively, advancing the timestamp on collisions.
func (s *Service) claimFile(ts int64) (*os.File, int64, error) {
	for i := 0; i < maxNameAttempts; i++ {
		name := filepath.Join(s.dir, filePrefix+strconv.FormatInt(ts, 10)+fileSuffix)
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, ts, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, 0, fmt.Errorf("create certificate file: %w", err)
		}
		ts++
	}
	return nil, 0, fmt.Errorf("no free certificate filename after %d attempts", maxNameAttempts)
}

func (s *Service) record(ctx context.Context, cert models.Certificate) {
	if s.register == nil {
		return
	}
	if err := s.register.SaveCertificate(ctx, cert); err != nil {
		s.logger.Warn("failed to record certificate", zap.Int64("document_id", cert.DocumentID), zap.Error(err))
	}
}

// parseOptionalDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func (s *Service) parseOptionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		local := t.In(s.location)
		return &local, nil
	}
	if t, err := time.ParseInLocation(models.DateLayout, value, s.location); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: %s %q is not a valid date", ErrInvalidRequest, name, value)
}

func buildFields(req models.CertificateRequest, manufactured, supplied *time.Time, locale Locale) []field {
	fields := []field{
		{Label: "Vendor Name", Value: req.VendorName},
		{Label: "Lot Number", Value: req.LotNumber},
		{Label: "Item Type", Value: req.ItemType},
	}
	if manufactured != nil {
		fields = append(fields, field{Label: "Manufacture Date", Value: locale.FormatDate(*manufactured)})
	}
	if supplied != nil {
		fields = append(fields, field{Label: "Supply Date", Value: locale.FormatDate(*supplied)})
	}
	if req.WarrantyPeriod != "" {
		fields = append(fields, field{Label: "Warranty Period", Value: req.WarrantyPeriod})
	}
	return fields
}

func normalize(req models.CertificateRequest) models.CertificateRequest {
	req.VendorName = strings.TrimSpace(req.VendorName)
	req.LotNumber = strings.TrimSpace(req.LotNumber)
	req.ItemType = strings.TrimSpace(req.ItemType)
	req.ManufactureDate = strings.TrimSpace(req.ManufactureDate)
	req.SupplyDate = strings.TrimSpace(req.SupplyDate)
	req.WarrantyPeriod = strings.TrimSpace(req.WarrantyPeriod)
	return req
}

func dateOnly(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(models.DateLayout)
}
