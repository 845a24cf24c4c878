package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/advisorsite/internal/captcha"
	"github.com/advisorsite/internal/db"
	"github.com/gin-gonic/gin"
)

func postLogin(f *handlerFixture, form url.Values) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.RemoteAddr = "192.0.2.10:4321"
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func TestLoginCreatesSession(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	if _, err := db.EnsureUser(f.db, "admin", "s3cret-pass"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	f.router.POST("/admin/login", f.api.Login)
	protected := f.router.Group("/admin", AuthRequired())
	protected.GET("", f.api.ShowDashboard)

	recorder := postLogin(f, url.Values{"username": {"admin"}, "password": {"s3cret-pass"}})
	if recorder.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d", recorder.Code)
	}
	if location := recorder.Header().Get("Location"); location != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", location)
	}

	cookies := recorder.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	request := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	dashboard := httptest.NewRecorder()
	f.router.ServeHTTP(dashboard, request)
	if dashboard.Code != http.StatusOK {
		t.Fatalf("expected dashboard with session, got %d", dashboard.Code)
	}
	if name, data := f.html.lastRendered(); name != "dashboard.html" || data["username"] != "admin" {
		t.Fatalf("unexpected dashboard render %q %v", name, data)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	if _, err := db.EnsureUser(f.db, "admin", "s3cret-pass"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	f.router.POST("/admin/login", f.api.Login)

	recorder := postLogin(f, url.Values{"username": {"admin"}, "password": {"wrong"}})
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
	if name, _ := f.html.lastRendered(); name != "login_error.html" {
		t.Fatalf("expected login_error.html, got %q", name)
	}
}

func TestLoginRequiresCaptchaWhenEnabled(t *testing.T) {
	f := newHandlerFixture(t, Options{
		Captcha: captcha.New(true, "site-key", "secret"),
	})
	if _, err := db.EnsureUser(f.db, "admin", "s3cret-pass"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	f.router.GET("/admin/login", f.api.ShowLoginPage)
	f.router.POST("/admin/login", f.api.Login)

	recorder := postLogin(f, url.Values{"username": {"admin"}, "password": {"s3cret-pass"}})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected captcha failure, got %d", recorder.Code)
	}

	page := httptest.NewRecorder()
	f.router.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	_, data := f.html.lastRendered()
	if data["captchaEnabled"] != true || data["captchaSiteKey"] != "site-key" {
		t.Fatalf("expected captcha widget data on the login page, got %v", data)
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	limiter := NewRateLimiter(0.001, 2, nil)
	f.router.POST("/admin/login", limiter.Middleware(), f.api.Login)

	form := url.Values{"username": {"nobody"}, "password": {"x"}}
	for i := 0; i < 2; i++ {
		if recorder := postLogin(f, form); recorder.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, recorder.Code)
		}
	}
	if recorder := postLogin(f, form); recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the burst, got %d", recorder.Code)
	}
}

func TestRateLimiterDisabledWithZeroRate(t *testing.T) {
	limiter := NewRateLimiter(0, 1, nil)
	for i := 0; i < 10; i++ {
		if !limiter.Allow("192.0.2.1") {
			t.Fatalf("expected disabled limiter to allow request %d", i+1)
		}
	}
}

func TestAuthRequired(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	protected := f.router.Group("/admin", AuthRequired())
	protected.GET("/hero", f.api.ShowHeroManagement)
	protected.GET("/api/hero", f.api.ListHeroSections)

	page := f.do(t, http.MethodGet, "/admin/hero", nil)
	if page.Code != http.StatusFound || page.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d %q", page.Code, page.Header().Get("Location"))
	}

	api := f.do(t, http.MethodGet, "/admin/api/hero", nil)
	if api.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for the JSON API, got %d", api.Code)
	}
}

func TestShowHeroEditModes(t *testing.T) {
	f := newHandlerFixture(t, Options{})
	f.router.GET("/admin/hero/:id", f.api.ShowHeroEdit)

	recorder := f.do(t, http.MethodGet, "/admin/hero/new", nil)
	name, data := f.html.lastRendered()
	if recorder.Code != http.StatusOK || name != "hero_edit.html" || data["isNew"] != true {
		t.Fatalf("expected creation mode, got %d %q %v", recorder.Code, name, data)
	}
	section, ok := data["section"].(db.HeroSection)
	if !ok || section.Status != db.StatusDraft || section.Colors.TitleColor == "" {
		t.Fatalf("expected draft with default colors, got %+v", data["section"])
	}
	site, ok := data["site"].(gin.H)
	if !ok || site["name"] == "" {
		t.Fatalf("expected site settings in template data, got %v", data["site"])
	}

	recorder = f.do(t, http.MethodGet, "/admin/hero/77", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing section, got %d", recorder.Code)
	}
}
