package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/advisorsite/internal/handler"
	"github.com/advisorsite/internal/logging"
	"github.com/advisorsite/internal/metrics"
	"github.com/advisorsite/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config 描述路由层需要的外部设置。
type Config struct {
	SessionSecret string
	// StaticDir 为公开静态资源目录，对应 /static。
	StaticDir string
	// UploadDir 与 UploadURLPath 仅在本地存储时用于直接提供上传文件。
	UploadDir     string
	UploadURLPath string
	// TemplateGlob 为空时不加载模板，测试中使用。
	TemplateGlob   string
	MetricsEnabled bool
	LoginLimiter   *handler.RateLimiter
	Logger         *zap.Logger
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger))
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 7 * 24 * 3600})
	r.Use(sessions.Sessions("advisorsite_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(templateFuncs(time.Now))
	if strings.TrimSpace(cfg.TemplateGlob) != "" {
		r.LoadHTMLGlob(cfg.TemplateGlob)
	}

	// 静态文件服务
	staticDir := strings.TrimSpace(cfg.StaticDir)
	if staticDir == "" {
		staticDir = "./web/static"
	}
	r.Static("/static", staticDir)
	if uploadDir := strings.TrimSpace(cfg.UploadDir); uploadDir != "" {
		r.Static("/uploads", uploadDir)
		if path := strings.TrimRight(cfg.UploadURLPath, "/"); path != "" && !strings.HasPrefix(path+"/", "/static/") && path != "/uploads" {
			r.Static(path, uploadDir)
		}
	}

	r.GET("/healthz", api.HealthCheck)
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// 公开页面与接口
	r.GET("/", api.ShowHome)
	r.GET("/api/public/content", api.GetPublicContent)
	r.GET("/api/content/events", api.StreamContentEvents)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		if cfg.LoginLimiter != nil {
			admin.POST("/login", cfg.LoginLimiter.Middleware(), api.Login)
		} else {
			admin.POST("/login", api.Login)
		}
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("", api.ShowDashboard)
			auth.GET("/hero", api.ShowHeroManagement)
			auth.GET("/hero/:id", api.ShowHeroEdit)
			auth.GET("/slides", api.ShowSlideManagement)
			for _, section := range []string{"team", "services", "clients", "credentials", "gallery"} {
				auth.GET("/"+section, api.ShowSection(section))
			}
			auth.GET("/about", api.ShowAboutEdit)
			auth.GET("/contact", api.ShowContactEdit)
			auth.GET("/settings", api.ShowSettings)

			// API路由
			v := auth.Group("/api")
			{
				v.GET("/hero", api.ListHeroSections)
				v.POST("/hero", api.CreateHeroSection)
				v.GET("/hero/:id", api.GetHeroSection)
				v.PUT("/hero/:id", api.UpdateHeroSection)
				v.DELETE("/hero/:id", api.DeleteHeroSection)
				v.POST("/hero/:id/publish", api.PublishHeroSection)
				v.POST("/hero/:id/unpublish", api.UnpublishHeroSection)

				v.GET("/slides", api.ListSlides)
				v.POST("/slides", api.CreateSlide)
				v.POST("/slides/reorder", api.ReorderSlides)
				v.GET("/slides/:id", api.GetSlide)
				v.PUT("/slides/:id", api.UpdateSlide)
				v.DELETE("/slides/:id", api.DeleteSlide)
				v.POST("/slides/:id/publish", api.PublishSlide)
				v.POST("/slides/:id/unpublish", api.UnpublishSlide)

				v.GET("/team", api.ListTeamMembers)
				v.POST("/team", api.CreateTeamMember)
				v.POST("/team/reorder", api.ReorderTeamMembers)
				v.PUT("/team/:id", api.UpdateTeamMember)
				v.DELETE("/team/:id", api.DeleteTeamMember)

				v.GET("/services", api.ListOfferings)
				v.POST("/services", api.CreateOffering)
				v.POST("/services/reorder", api.ReorderOfferings)
				v.PUT("/services/:id", api.UpdateOffering)
				v.DELETE("/services/:id", api.DeleteOffering)

				v.GET("/clients", api.ListClients)
				v.POST("/clients", api.CreateClient)
				v.POST("/clients/reorder", api.ReorderClients)
				v.PUT("/clients/:id", api.UpdateClient)
				v.DELETE("/clients/:id", api.DeleteClient)

				v.GET("/credentials", api.ListCredentials)
				v.POST("/credentials", api.CreateCredential)
				v.POST("/credentials/reorder", api.ReorderCredentials)
				v.PUT("/credentials/:id", api.UpdateCredential)
				v.DELETE("/credentials/:id", api.DeleteCredential)

				v.GET("/gallery", api.ListGalleryImages)
				v.POST("/gallery", api.CreateGalleryImage)
				v.POST("/gallery/reorder", api.ReorderGalleryImages)
				v.PUT("/gallery/:id", api.UpdateGalleryImage)
				v.DELETE("/gallery/:id", api.DeleteGalleryImage)

				v.GET("/about", api.GetAbout)
				v.PUT("/about", api.UpdateAbout)
				v.GET("/contact", api.GetContact)
				v.PUT("/contact", api.UpdateContact)
				v.GET("/settings", api.GetSettings)
				v.PUT("/settings", api.UpdateSettings)

				v.POST("/uploads", api.UploadImage)
				v.GET("/icons", api.ListIcons)
			}
		}
	}

	return r
}

func templateFuncs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"markdown":    handler.RenderMarkdown,
		"socialIcon":  view.SocialIcon,
		"serviceIcon": view.ServiceIcon,
		"join":        strings.Join,
		"basename":    filepath.Base,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"ago": func(t time.Time) string {
			return formatRelativeTime(now(), t)
		},
	}
}

// formatRelativeTime 将时间格式化为后台列表中的相对时间，例如 "5 minutes ago"。
func formatRelativeTime(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	if diff < time.Minute {
		return "just now"
	}

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour")
	case diff < 30*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day")
	case diff < 365*24*time.Hour:
		return plural(int(diff/(30*24*time.Hour)), "month")
	default:
		return plural(int(diff/(365*24*time.Hour)), "year")
	}
}
