package sheets

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
)

const registerColumns = 9

// CertificateRegister stores issued certificates as rows of a spreadsheet:
// document id, filename, vendor, lot, item type, manufacture, supply, warranty, created at.
type CertificateRegister struct {
	sheet  Sheet
	logger *zap.Logger
}

// NewCertificateRegister wires a register on top of a sheet.
func NewCertificateRegister(sheet Sheet, logger *zap.Logger) *CertificateRegister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateRegister{sheet: sheet, logger: logger}
}

// SaveCertificate appends one row for the certificate.
func (r *CertificateRegister) SaveCertificate(ctx context.Context, cert models.Certificate) error {
	values := []interface{}{
		strconv.FormatInt(cert.DocumentID, 10),
		cert.Filename,
		cert.VendorName,
		cert.LotNumber,
		cert.ItemType,
		cert.ManufactureDate,
		cert.SupplyDate,
		cert.WarrantyPeriod,
		cert.CreatedAt.UTC().Format(time.RFC3339),
	}
	return r.sheet.AppendRow(ctx, values)
}

// ListCertificates reads the register and returns up to limit entries, newest first.
func (r *CertificateRegister) ListCertificates(ctx context.Context, limit int) ([]models.Certificate, error) {
	rows, err := r.sheet.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load register: %w", err)
	}

	certs := make([]models.Certificate, 0, len(rows))
	for _, row := range rows {
		cert, err := parseRow(row)
		if err != nil {
			r.logger.Debug("skip register row", zap.Any("row", row), zap.Error(err))
			continue
		}
		certs = append(certs, cert)
	}

	sort.SliceStable(certs, func(i, j int) bool { return certs[i].DocumentID > certs[j].DocumentID })
	if limit > 0 && len(certs) > limit {
		certs = certs[:limit]
	}
	return certs, nil
}

func parseRow(row []interface{}) (models.Certificate, error) {
	if len(row) < 5 {
		return models.Certificate{}, fmt.Errorf("short row: %d columns", len(row))
	}

	cells := make([]string, registerColumns)
	for i := 0; i < len(row) && i < registerColumns; i++ {
		cells[i] = cellString(row[i])
	}

	id, err := strconv.ParseInt(cells[0], 10, 64)
	if err != nil {
		return models.Certificate{}, fmt.Errorf("parse document id: %w", err)
	}

	cert := models.Certificate{
		DocumentID:      id,
		Filename:        cells[1],
		VendorName:      cells[2],
		LotNumber:       cells[3],
		ItemType:        cells[4],
		ManufactureDate: cells[5],
		SupplyDate:      cells[6],
		WarrantyPeriod:  cells[7],
	}
	if createdAt, err := time.Parse(time.RFC3339, cells[8]); err == nil {
		cert.CreatedAt = createdAt
	} else {
		cert.CreatedAt = time.UnixMilli(id).UTC()
	}
	return cert, nil
}
