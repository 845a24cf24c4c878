package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/defaults"
	"github.com/advisorsite/internal/notify"
	"github.com/advisorsite/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	mu   sync.Mutex
	last *stubHTMLInstance
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	instance := &stubHTMLInstance{name: name, data: data}
	r.mu.Lock()
	r.last = instance
	r.mu.Unlock()
	return instance
}

func (r *stubHTMLRender) lastRendered() (string, gin.H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return "", nil
	}
	data, _ := r.last.data.(gin.H)
	return r.last.name, data
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type handlerFixture struct {
	api    *API
	db     *gorm.DB
	hub    *notify.Hub
	html   *stubHTMLRender
	router *gin.Engine
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Options{
		Driver: db.DriverSQLite,
		Path:   fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano()),
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newHandlerFixture(t *testing.T, opts Options) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := setupHandlerTestDB(t)
	hub := notify.NewHub(16)
	t.Cleanup(hub.Close)

	site := service.NewSite(gdb, defaults.Static(defaults.Builtin()), hub, nil)
	if err := site.LoadAll(context.Background()); err != nil {
		t.Fatalf("load site: %v", err)
	}

	opts.DB = gdb
	opts.Site = site
	opts.Hub = hub
	api := NewAPI(opts)

	html := &stubHTMLRender{}
	router := gin.New()
	router.HTMLRender = html
	router.Use(sessions.Sessions("advisorsite_session", cookie.NewStore([]byte("test-secret"))))

	return &handlerFixture{api: api, db: gdb, hub: hub, html: html, router: router}
}

// registerAdminAPI mounts the JSON API without the session check.
func (f *handlerFixture) registerAdminAPI() {
	a := f.api
	api := f.router.Group("/admin/api")

	api.GET("/hero", a.ListHeroSections)
	api.POST("/hero", a.CreateHeroSection)
	api.GET("/hero/:id", a.GetHeroSection)
	api.PUT("/hero/:id", a.UpdateHeroSection)
	api.DELETE("/hero/:id", a.DeleteHeroSection)
	api.POST("/hero/:id/publish", a.PublishHeroSection)
	api.POST("/hero/:id/unpublish", a.UnpublishHeroSection)

	api.GET("/slides", a.ListSlides)
	api.POST("/slides", a.CreateSlide)
	api.POST("/slides/reorder", a.ReorderSlides)
	api.POST("/slides/:id/publish", a.PublishSlide)

	api.GET("/team", a.ListTeamMembers)
	api.POST("/team", a.CreateTeamMember)
	api.POST("/team/reorder", a.ReorderTeamMembers)

	api.GET("/clients", a.ListClients)
	api.POST("/clients", a.CreateClient)
	api.DELETE("/clients/:id", a.DeleteClient)

	api.GET("/gallery", a.ListGalleryImages)
	api.POST("/gallery", a.CreateGalleryImage)

	api.GET("/about", a.GetAbout)
	api.PUT("/about", a.UpdateAbout)
	api.GET("/settings", a.GetSettings)
	api.PUT("/settings", a.UpdateSettings)

	api.POST("/uploads", a.UploadImage)
}

func (f *handlerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
}

type itemResponse[T any] struct {
	Item  T      `json:"item"`
	Error string `json:"error"`
}

type listResponse[T any] struct {
	Items     []T    `json:"items"`
	Changed   bool   `json:"changed"`
	LastError string `json:"lastError"`
	Error     string `json:"error"`
}

func createItem[T any](t *testing.T, f *handlerFixture, path string, body interface{}) T {
	t.Helper()
	recorder := f.do(t, http.MethodPost, path, body)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d: %s", path, recorder.Code, recorder.Body.String())
	}
	var resp itemResponse[T]
	decodeBody(t, recorder, &resp)
	return resp.Item
}
