package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/service/certificate"
)

const (
	uploadsPath             = "/uploads/"
	defaultCertificateLimit = 20
	maxCertificateLimit     = 100
)

// CertificateIssuer renders certificates and lists the register.
type CertificateIssuer interface {
	Issue(ctx context.Context, req models.CertificateRequest, locale certificate.Locale) (certificate.Issued, error)
	List(ctx context.Context, limit int) ([]models.Certificate, error)
	DefaultLocale() certificate.Locale
}

// QREncoder turns a URL into a PNG data URL.
type QREncoder interface {
	Encode(req models.QRRequest) (string, error)
}

// CertificateHandler serves the PDF and QR conversion endpoints.
type CertificateHandler struct {
	certs         CertificateIssuer
	qr            QREncoder
	publicBaseURL string
	logger        *zap.Logger
}

// NewCertificateHandler constructs the HTTP handler adapter.
// publicBaseURL may be empty, in which case links are built from the request host.
func NewCertificateHandler(certs CertificateIssuer, qr QREncoder, publicBaseURL string, logger *zap.Logger) *CertificateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateHandler{
		certs:         certs,
		qr:            qr,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}
}

// GeneratePDF writes a certificate and returns where it can be downloaded.
func (h *CertificateHandler) GeneratePDF(c *gin.Context) {
	var req models.CertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "invalid certificate payload", err)
		return
	}

	locale := certificate.ResolveLocale(c.Query("lang"), c.GetHeader("Accept-Language"), h.certs.DefaultLocale())

	issued, err := h.certs.Issue(c.Request.Context(), req, locale)
	if err != nil {
		h.fail(c, "failed generating certificate", err)
		return
	}

	filepath := uploadsPath + issued.Filename
	c.JSON(http.StatusOK, models.CertificateResponse{
		Success:   true,
		Filename:  issued.Filename,
		Filepath:  filepath,
		Timestamp: issued.Timestamp,
		FullURL:   h.baseURL(c) + filepath,
	})
}

// GenerateQR encodes the submitted URL as a QR image.
func (h *CertificateHandler) GenerateQR(c *gin.Context) {
	var req models.QRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "invalid qr payload", err)
		return
	}

	dataURL, err := h.qr.Encode(req)
	if err != nil {
		h.fail(c, "failed generating qr code", err)
		return
	}

	c.JSON(http.StatusOK, models.QRResponse{Success: true, QRCode: dataURL, PDFURL: req.PDFURL})
}

// ListCertificates returns the newest register entries.
func (h *CertificateHandler) ListCertificates(c *gin.Context) {
	limit := defaultCertificateLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxCertificateLimit)
	}

	certs, err := h.certs.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing certificates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load certificates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"certificates": certs, "total": len(certs)})
}

// fail reports every conversion failure as a 500 with the error text.
func (h *CertificateHandler) fail(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Error: err.Error()})
}

func (h *CertificateHandler) baseURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
