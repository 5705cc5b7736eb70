package routes

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/enquiry/internal/config"
	"github.com/joshua-takyi/enquiry/internal/container"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment:     "development",
		FrontendURL:     "http://localhost:3000",
		StoreDriver:     config.StoreMemory,
		QRStorage:       config.QRStorageCloudinary,
		SessionSecret:   "route-test-secret",
		PublicBaseURL:   "http://localhost:3000",
		QRPDFBaseURL:    "https://capturing-tool.vercel.app",
		EnquiryType:     "Packers & Movers",
		DisplayTimezone: "UTC",
		UsersCollection: "Users",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupRoutes(container.NewContainer(cfg, logger, nil, nil, nil))
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "enquiry-api") {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("request id header missing")
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r := newTestRouter()
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/me"},
		{http.MethodGet, "/api/v1/admin/events"},
		{http.MethodPost, "/api/v1/admin/events"},
		{http.MethodPatch, "/api/v1/admin/events/abc"},
		{http.MethodPut, "/api/v1/admin/events/abc"},
		{http.MethodGet, "/api/v1/admin/events/abc/export"},
		{http.MethodPost, "/api/v1/admin/bulk-messages"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestPublicRoutesUnknownEvent(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("get status = %d", w.Code)
	}

	body := `{"name":"Asha","phone":"9876543210","bhk":"Shop","services":"CCTV"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/missing/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("register status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestValidateFieldRouteIsPublic(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/validate?field=bhk", bytes.NewBufferString(`{"bhk":"Villa"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Please select a valid option") {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}
