package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/railfit/internal/config"
	"github.com/mamadbah2/railfit/internal/domain/models"
	"github.com/mamadbah2/railfit/internal/repository/memory"
	"github.com/mamadbah2/railfit/internal/server/handlers"
	"github.com/mamadbah2/railfit/internal/service/certificate"
	"github.com/mamadbah2/railfit/internal/service/inventory"
	"github.com/mamadbah2/railfit/internal/service/qrcode"
	"github.com/mamadbah2/railfit/internal/service/reporting"
	"github.com/mamadbah2/railfit/internal/service/users"
)

var certificateName = regexp.MustCompile(`^railway-item-(\d+)\.pdf$`)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T, publicBaseURL string) *gin.Engine {
	t.Helper()

	repo := memory.NewSeededRepository()
	certs, err := certificate.NewService(t.TempDir(), certificate.DefaultLocale(), repo, nil)
	if err != nil {
		t.Fatalf("certificate.NewService() error = %v", err)
	}

	cfg := config.ServerConfig{AllowedOrigins: []string{"http://localhost:8080"}}
	h := Handlers{
		Certificates: handlers.NewCertificateHandler(certs, qrcode.NewService(300, 2, nil), publicBaseURL, nil),
		Dashboard: handlers.NewDashboardHandler(
			inventory.NewService(repo, nil),
			users.NewService(repo, nil),
			reporting.NewService(repo, repo, 30, nil),
			nil,
		),
	}
	return New(cfg, certs.Dir(), h, nil)
}

func do(t *testing.T, engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGeneratePDFAndDownload(t *testing.T) {
	engine := newTestEngine(t, "")

	before := time.Now().UnixMilli()
	rec := do(t, engine, http.MethodPost, "/api/generate-pdf", `{"vendorName":"Acme","lotNumber":"L1","itemType":"Rail Pad"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.CertificateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("success = false, body = %s", rec.Body.String())
	}
	m := certificateName.FindStringSubmatch(resp.Filename)
	if m == nil {
		t.Fatalf("filename = %q, want railway-item-<ts>.pdf", resp.Filename)
	}
	if m[1] != strconv.FormatInt(resp.Timestamp, 10) {
		t.Fatalf("filename %q does not carry timestamp %d", resp.Filename, resp.Timestamp)
	}
	if resp.Timestamp < before {
		t.Fatalf("timestamp %d is before request start %d", resp.Timestamp, before)
	}
	if resp.Filepath != "/uploads/"+resp.Filename {
		t.Fatalf("filepath = %q", resp.Filepath)
	}
	if resp.FullURL != "http://example.com"+resp.Filepath {
		t.Fatalf("fullUrl = %q", resp.FullURL)
	}

	u, err := url.Parse(resp.FullURL)
	if err != nil {
		t.Fatalf("parse fullUrl: %v", err)
	}
	dl := do(t, engine, http.MethodGet, u.Path, "")
	if dl.Code != http.StatusOK {
		t.Fatalf("download status = %d", dl.Code)
	}
	if !bytes.HasPrefix(dl.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("download is not a PDF: %.16q", dl.Body.String())
	}

	list := do(t, engine, http.MethodGet, "/api/certificates?limit=5", "")
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), resp.Filename) {
		t.Fatalf("certificates = %d %s", list.Code, list.Body.String())
	}
}

func TestGeneratePDFUsesPublicBaseURL(t *testing.T) {
	engine := newTestEngine(t, "https://rail.example.org/")

	rec := do(t, engine, http.MethodPost, "/api/generate-pdf", `{"vendorName":"Acme","lotNumber":"L1","itemType":"Rail Pad"}`)
	var resp models.CertificateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if want := "https://rail.example.org/uploads/" + resp.Filename; resp.FullURL != want {
		t.Fatalf("fullUrl = %q, want %q", resp.FullURL, want)
	}
}

func TestConversionFailuresReturn500(t *testing.T) {
	engine := newTestEngine(t, "")

	cases := []struct {
		name   string
		target string
		body   string
	}{
		{"malformed pdf body", "/api/generate-pdf", `{"vendorName":`},
		{"missing pdf fields", "/api/generate-pdf", `{"vendorName":"Acme"}`},
		{"bad pdf date", "/api/generate-pdf", `{"vendorName":"Acme","lotNumber":"L1","itemType":"Rail Pad","supplyDate":"soon"}`},
		{"malformed qr body", "/api/generate-qr", `[`},
		{"missing qr url", "/api/generate-qr", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, engine, http.MethodPost, tc.target, tc.body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Success || resp.Error == "" {
				t.Fatalf("response = %+v, want success=false with message", resp)
			}
		})
	}
}

func TestGenerateQR(t *testing.T) {
	engine := newTestEngine(t, "")

	rec := do(t, engine, http.MethodPost, "/api/generate-qr", `{"pdfUrl":"http://localhost:5000/uploads/railway-item-1.pdf"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.QRResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.PDFURL != "http://localhost:5000/uploads/railway-item-1.pdf" {
		t.Fatalf("response = %+v", resp)
	}
	if !strings.HasPrefix(resp.QRCode, "data:image/png;base64,") {
		t.Fatalf("qrCode = %.40q", resp.QRCode)
	}
}

func TestUnknownUploadIs404(t *testing.T) {
	engine := newTestEngine(t, "")

	if rec := do(t, engine, http.MethodGet, "/uploads/railway-item-0.pdf", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	engine := newTestEngine(t, "")

	rec := do(t, engine, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("status = %q, want OK", resp.Status)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil || !strings.HasSuffix(resp.Timestamp, "Z") {
		t.Fatalf("timestamp = %q, want RFC 3339 UTC", resp.Timestamp)
	}
}

func TestCORSPreflight(t *testing.T) {
	engine := newTestEngine(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-pdf", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8080" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("Access-Control-Allow-Credentials = %q, want true", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,DELETE,OPTIONS" {
		t.Fatalf("Access-Control-Allow-Methods = %q, want GET,POST,DELETE,OPTIONS", got)
	}
}

func TestCORSConfig(t *testing.T) {
	cases := []struct {
		name            string
		origins         []string
		wantAll         bool
		wantCredentials bool
	}{
		{"allowlist", []string{"http://localhost:8080"}, false, true},
		{"any origin", nil, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := corsConfig(tc.origins)
			if c.AllowAllOrigins != tc.wantAll {
				t.Fatalf("AllowAllOrigins = %v, want %v", c.AllowAllOrigins, tc.wantAll)
			}
			if c.AllowCredentials != tc.wantCredentials {
				t.Fatalf("AllowCredentials = %v, want %v", c.AllowCredentials, tc.wantCredentials)
			}
			for _, m := range c.AllowMethods {
				if m == http.MethodPut || m == http.MethodPatch || m == http.MethodHead {
					t.Fatalf("AllowMethods = %v, unexpected %s", c.AllowMethods, m)
				}
			}
			if err := c.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}

func TestInventoryEndpoints(t *testing.T) {
	engine := newTestEngine(t, "")

	rec := do(t, engine, http.MethodGet, "/api/inventory?vendor=RailTech+Solutions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listing inventory.Listing
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if listing.Total != 1 || len(listing.Vendors) != 5 {
		t.Fatalf("listing = %+v", listing)
	}

	if rec := do(t, engine, http.MethodGet, "/api/inventory?status=broken", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status = %d, want 400", rec.Code)
	}

	export := do(t, engine, http.MethodGet, "/api/inventory/export?status=failed", "")
	if export.Code != http.StatusOK {
		t.Fatalf("export status = %d", export.Code)
	}
	if ct := export.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/vnd.openxmlformats") {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestUserEndpoints(t *testing.T) {
	engine := newTestEngine(t, "")

	rec := do(t, engine, http.MethodPost, "/api/users", `{"name":"Ana Ruiz","email":"ana@railway-inspect.gov","role":"inspector"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" || created.Status != models.UserActive {
		t.Fatalf("created = %+v", created)
	}

	if rec := do(t, engine, http.MethodPost, "/api/users", `{"name":"X","email":"nope","role":"inspector"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid user status = %d, want 400", rec.Code)
	}
	if rec := do(t, engine, http.MethodGet, "/api/users?role=inspector", ""); !strings.Contains(rec.Body.String(), `"total":3`) {
		t.Fatalf("inspectors = %s", rec.Body.String())
	}
	if rec := do(t, engine, http.MethodDelete, "/api/users/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	if rec := do(t, engine, http.MethodDelete, "/api/users/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestReportingEndpoints(t *testing.T) {
	engine := newTestEngine(t, "")

	for _, target := range []string{"/api/overview", "/api/analytics"} {
		rec := do(t, engine, http.MethodGet, target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", target, rec.Code)
		}
	}

	rec := do(t, engine, http.MethodGet, "/api/overview", "")
	if !strings.Contains(rec.Body.String(), `"totalItems":5`) || !strings.Contains(rec.Body.String(), `"passRate":60`) {
		t.Fatalf("overview = %s", rec.Body.String())
	}
}
