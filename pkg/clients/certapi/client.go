package certapi

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/railfit/internal/domain/models"
)

const pngDataURLPrefix = "data:image/png;base64,"

// Client exposes the certificate API operations used by certctl.
type Client interface {
	GeneratePDF(ctx context.Context, req models.CertificateRequest) (*models.CertificateResponse, error)
	GenerateQR(ctx context.Context, pdfURL string) (*models.QRResponse, error)
	Health(ctx context.Context) (*HealthResponse, error)
}

// HealthResponse mirrors GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	lang       string
}

// NewClient builds an API client against the server base URL.
// lang, when set, selects the locale of certificate dates.
func NewClient(baseURL, lang string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &APIClient{httpClient: restyClient, lang: lang}
}

// GeneratePDF issues a certificate.
func (c *APIClient) GeneratePDF(ctx context.Context, req models.CertificateRequest) (*models.CertificateResponse, error) {
	result := new(models.CertificateResponse)
	apiErr := new(models.ErrorResponse)

	r := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(result).
		SetError(apiErr)
	if c.lang != "" {
		r.SetQueryParam("lang", c.lang)
	}

	resp, err := r.Post("/api/generate-pdf")
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	if !result.Success || result.Filename == "" {
		return nil, errors.New("generate pdf: server reported failure")
	}

	return result, nil
}

// GenerateQR requests a QR image for the given URL.
func (c *APIClient) GenerateQR(ctx context.Context, pdfURL string) (*models.QRResponse, error) {
	result := new(models.QRResponse)
	apiErr := new(models.ErrorResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(models.QRRequest{PDFURL: pdfURL}).
		SetResult(result).
		SetError(apiErr).
		Post("/api/generate-qr")
	if err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}
	if !result.Success || result.QRCode == "" {
		return nil, errors.New("generate qr: server reported failure")
	}

	return result, nil
}

// Health calls GET /api/health. certctl uses it to check the server before issuing.
func (c *APIClient) Health(ctx context.Context) (*HealthResponse, error) {
	result := new(HealthResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get("/api/health")
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("health: unexpected status %d", resp.StatusCode())
	}

	return result, nil
}

// PNG extracts the image bytes from a PNG data URL.
func PNG(dataURL string) ([]byte, error) {
	payload, ok := strings.CutPrefix(dataURL, pngDataURLPrefix)
	if !ok {
		return nil, errors.New("not a png data url")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode png data url: %w", err)
	}
	return data, nil
}

func checkResponse(resp *resty.Response, apiErr *models.ErrorResponse) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	message := apiErr.Error
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("api error: status=%d, message=%s", resp.StatusCode(), message)
}
