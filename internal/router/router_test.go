package router

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/handler"
	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.Open(db.Options{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	site := service.NewSite(gdb, defaults.Static(defaults.Builtin()), nil, nil)
	if err := site.LoadAll(context.Background()); err != nil {
		t.Fatalf("load site: %v", err)
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-secret"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = t.TempDir()
	}
	return SetupRouter(handler.NewAPI(handler.Options{DB: gdb, Site: site}), cfg)
}

func TestSetupRouterServesUploadsAlias(t *testing.T) {
	uploadDir := t.TempDir()
	fileName := "example.txt"
	fileContent := []byte("hello uploads")
	if err := os.WriteFile(filepath.Join(uploadDir, fileName), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r := setupTestRouter(t, Config{UploadDir: uploadDir, UploadURLPath: "/media"})

	for _, path := range []string{"/uploads/" + fileName, "/media/" + fileName} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d", path, http.StatusOK, rr.Code)
		}
		if rr.Body.String() != string(fileContent) {
			t.Fatalf("%s: unexpected body, got %q", path, rr.Body.String())
		}
	}
}

func TestAdminAPIRequiresSession(t *testing.T) {
	r := setupTestRouter(t, Config{})

	for _, path := range []string{"/admin/api/hero", "/admin/api/team", "/admin/api/settings"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/team", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("expected admin page to redirect, got %d", rr.Code)
	}
}

func TestPublicRoutes(t *testing.T) {
	r := setupTestRouter(t, Config{MetricsEnabled: true})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/content", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"heroPlaceholder":true`) {
		t.Fatalf("unexpected public content response %d: %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected healthy, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "advisorsite_http_requests_total") {
		t.Fatalf("expected prometheus metrics, got %d", rr.Code)
	}
}

func TestLoginRouteIsRateLimited(t *testing.T) {
	r := setupTestRouter(t, Config{LoginLimiter: handler.NewRateLimiter(0.001, 1, nil)})

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("username=a&password=b"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	post()
	if code := post(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the second attempt, got %d", code)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{name: "zero", input: time.Time{}, expected: ""},
		{name: "seconds", input: now.Add(-30 * time.Second), expected: "just now"},
		{name: "one minute", input: now.Add(-time.Minute), expected: "1 minute ago"},
		{name: "minutes", input: now.Add(-5 * time.Minute), expected: "5 minutes ago"},
		{name: "hours", input: now.Add(-2 * time.Hour), expected: "2 hours ago"},
		{name: "days", input: now.Add(-72 * time.Hour), expected: "3 days ago"},
		{name: "months", input: now.Add(-60 * 24 * time.Hour), expected: "2 months ago"},
		{name: "years", input: now.Add(-3 * 365 * 24 * time.Hour), expected: "3 years ago"},
		{name: "future", input: now.Add(2 * time.Minute), expected: "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRelativeTime(now, tt.input)
			if got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
