package handler

import (
	"context"
	"strings"

	"github.com/advisorsite/internal/cache"
	"github.com/advisorsite/internal/captcha"
	"github.com/advisorsite/internal/notify"
	"github.com/advisorsite/internal/service"
	"github.com/advisorsite/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	site     *service.Site
	images   *storage.Images
	captcha  *captcha.Verifier
	snapshot *cache.Snapshot[service.PublicContent]
	hub      *notify.Hub
	logger   *zap.Logger
}

// Options carries the dependencies of NewAPI. Site and DB are required.
type Options struct {
	DB       *gorm.DB
	Site     *service.Site
	Images   *storage.Images
	Captcha  *captcha.Verifier
	Snapshot *cache.Snapshot[service.PublicContent]
	Hub      *notify.Hub
	Logger   *zap.Logger
}

type siteViewModel struct {
	Name           string
	Tagline        string
	LogoURL        string
	FaviconURL     string
	SEOTitle       string
	SEODescription string
	SEOKeywords    string
	PrimaryColor   string
	AccentColor    string
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	verifier := opts.Captcha
	if verifier == nil {
		verifier = captcha.New(false, "", "")
	}

	return &API{
		db:       opts.DB,
		site:     opts.Site,
		images:   opts.Images,
		captcha:  verifier,
		snapshot: opts.Snapshot,
		hub:      opts.Hub,
		logger:   logger,
	}
}

// PublicContentBuilder builds the public snapshot straight from the caches.
func PublicContentBuilder(site *service.Site) func(context.Context) (service.PublicContent, error) {
	return func(context.Context) (service.PublicContent, error) {
		return site.Public(), nil
	}
}

// publicContent reads through the snapshot cache when one is configured.
func (a *API) publicContent(ctx context.Context) (service.PublicContent, error) {
	if a.snapshot == nil {
		return a.site.Public(), nil
	}
	return a.snapshot.Get(ctx)
}

// Site exposes the content accessors.
func (a *API) Site() *service.Site {
	return a.site
}

func (a *API) siteSettings(c *gin.Context) siteViewModel {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if view, ok := cached.(siteViewModel); ok {
			return view
		}
	}

	settings := a.site.Settings.Get()
	view := siteViewModel{
		Name:           strings.TrimSpace(settings.CompanyName),
		Tagline:        strings.TrimSpace(settings.Tagline),
		LogoURL:        strings.TrimSpace(settings.LogoURL),
		FaviconURL:     strings.TrimSpace(settings.FaviconURL),
		SEOTitle:       strings.TrimSpace(settings.SEOTitle),
		SEODescription: strings.TrimSpace(settings.SEODescription),
		SEOKeywords:    strings.Join(settings.SEOKeywords, ", "),
		PrimaryColor:   strings.TrimSpace(settings.Theme.PrimaryColor),
		AccentColor:    strings.TrimSpace(settings.Theme.AccentColor),
	}
	if view.Name == "" {
		view.Name = "Advisory"
	}
	if view.SEOTitle == "" {
		view.SEOTitle = view.Name
	}

	c.Set(siteSettingsContextKey, view)
	return view
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	view := a.siteSettings(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = gin.H{
			"name":           view.Name,
			"tagline":        view.Tagline,
			"logoUrl":        view.LogoURL,
			"faviconUrl":     view.FaviconURL,
			"seoTitle":       view.SEOTitle,
			"seoDescription": view.SEODescription,
			"seoKeywords":    view.SEOKeywords,
			"primaryColor":   view.PrimaryColor,
			"accentColor":    view.AccentColor,
		}
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = view.Name
	}

	c.HTML(status, template, payload)
}

// RenderHTML 在向模板渲染时自动附加公司设置中的名称、Logo 与 SEO 信息。
func (a *API) RenderHTML(c *gin.Context, status int, template string, data gin.H) {
	a.renderHTML(c, status, template, data)
}
