package models

import "time"

// CertificateRequest mirrors the body of POST /api/generate-pdf.
// Text fields are capped so the certificate always fits on one page.
type CertificateRequest struct {
	VendorName      string `json:"vendorName" validate:"required,max=200"`
	LotNumber       string `json:"lotNumber" validate:"required,max=200"`
	ItemType        string `json:"itemType" validate:"required,max=200"`
	ManufactureDate string `json:"manufactureDate,omitempty" validate:"max=64"`
	SupplyDate      string `json:"supplyDate,omitempty" validate:"max=64"`
	WarrantyPeriod  string `json:"warrantyPeriod,omitempty" validate:"max=200"`
}

// CertificateResponse is returned once the PDF has been written.
type CertificateResponse struct {
	Success   bool   `json:"success"`
	Filename  string `json:"filename"`
	Filepath  string `json:"filepath"`
	Timestamp int64  `json:"timestamp"`
	FullURL   string `json:"fullUrl"`
}

// Certificate is the register entry kept for every issued document.
type Certificate struct {
	DocumentID      int64     `bson:"_id" json:"documentId"`
	Filename        string    `bson:"filename" json:"filename"`
	VendorName      string    `bson:"vendor_name" json:"vendorName"`
	LotNumber       string    `bson:"lot_number" json:"lotNumber"`
	ItemType        string    `bson:"item_type" json:"itemType"`
	ManufactureDate string    `bson:"manufacture_date,omitempty" json:"manufactureDate,omitempty"`
	SupplyDate      string    `bson:"supply_date,omitempty" json:"supplyDate,omitempty"`
	WarrantyPeriod  string    `bson:"warranty_period,omitempty" json:"warrantyPeriod,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}

// QRRequest mirrors the body of POST /api/generate-qr.
type QRRequest struct {
	PDFURL string `json:"pdfUrl" validate:"required"`
}

// QRResponse carries the encoded image as a data URL.
type QRResponse struct {
	Success bool   `json:"success"`
	QRCode  string `json:"qrCode"`
	PDFURL  string `json:"pdfUrl"`
}

// ErrorResponse is the failure body of the conversion endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
