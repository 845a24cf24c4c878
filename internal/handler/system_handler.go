package handler

import (
	"net/http"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/service"
	"github.com/advisorsite/internal/view"
	"github.com/gin-gonic/gin"
)

// HealthCheck 提供负载均衡与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	sections := gin.H{}
	for _, loader := range a.site.Loaders() {
		state := "ok"
		if failing, ok := loader.(interface{ LastError() string }); ok && failing.LastError() != "" {
			state = failing.LastError()
		}
		sections[loader.Entity()] = state
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
		"sections": sections,
	})
}

// ShowSettings 渲染公司设置页面。
func (a *API) ShowSettings(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "settings.html", gin.H{
		"title": "Company settings",
	})
}

type settingsRequest struct {
	CompanyName    string         `json:"companyName"`
	Tagline        string         `json:"tagline"`
	LogoURL        string         `json:"logoUrl"`
	FaviconURL     string         `json:"faviconUrl"`
	SEOTitle       string         `json:"seoTitle"`
	SEODescription string         `json:"seoDescription"`
	SEOKeywords    []string       `json:"seoKeywords"`
	Social         db.SocialLinks `json:"social"`
	Theme          db.ThemeColors `json:"theme"`
}

func (p settingsRequest) toInput() service.SettingsInput {
	return service.SettingsInput{
		CompanyName:    p.CompanyName,
		Tagline:        p.Tagline,
		LogoURL:        p.LogoURL,
		FaviconURL:     p.FaviconURL,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
		SEOKeywords:    p.SEOKeywords,
		Social:         p.Social,
		Theme:          p.Theme,
	}
}

// GetSettings 返回当前生效的公司设置，没有记录时返回默认品牌信息。
func (a *API) GetSettings(c *gin.Context) {
	settings := a.site.Settings
	if err := settings.EnsureLoaded(c.Request.Context()); err != nil {
		respondServiceError(c, err, "failed to load company settings")
		return
	}

	_, stored := settings.Current()
	c.JSON(http.StatusOK, gin.H{
		"settings":  settings.Get(),
		"isDefault": !stored,
		"lastError": settings.LastError(),
	})
}

// UpdateSettings 保存新一版公司设置。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsRequest
	if !bindJSON(c, &payload, "invalid company settings") {
		return
	}

	saved, err := a.site.Settings.Save(c.Request.Context(), payload.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to save company settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": saved})
}

// ListIcons 返回后台可选的图标列表。
func (a *API) ListIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": view.ServiceIconOptions(),
		"social":   view.SocialIconOptions(),
	})
}
