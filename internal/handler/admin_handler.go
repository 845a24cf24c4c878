package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/advisorsite/internal/captcha"
	"github.com/advisorsite/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title":          "Admin login",
		"captchaEnabled": a.captcha.Enabled(),
		"captchaSiteKey": a.captcha.SiteKey(),
	})
}

// Login 处理用户登录请求，启用验证码时先校验 reCAPTCHA 令牌。
func (a *API) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if err := a.captcha.Verify(c.Request.Context(), c.PostForm("g-recaptcha-response"), c.ClientIP()); err != nil {
		if !errors.Is(err, captcha.ErrMissingToken) && !errors.Is(err, captcha.ErrRejected) {
			a.logger.Error("captcha verification failed", zap.Error(err))
		}
		c.HTML(http.StatusBadRequest, "login_error.html", gin.H{"error": "please complete the captcha"})
		return
	}

	user, err := db.Authenticate(a.db, username, password)
	if err != nil {
		a.logger.Info("login rejected", zap.String("username", username), zap.String("client_ip", c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "login_error.html", gin.H{"error": "invalid username or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login_error.html", gin.H{"error": "failed to save the session"})
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// ShowDashboard 渲染后台主面板，展示各栏目数量与加载错误。
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	site := a.site
	_, heroPublished := site.Hero.Current()

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":           "Dashboard",
		"username":        session.Get("username"),
		"heroCount":       len(site.Hero.Snapshot()),
		"heroPublished":   heroPublished,
		"slideCount":      len(site.Slides.Snapshot()),
		"teamCount":       len(site.Team.Snapshot()),
		"serviceCount":    len(site.Offerings.Snapshot()),
		"clientCount":     len(site.Clients.Snapshot()),
		"credentialCount": len(site.Credentials.Snapshot()),
		"galleryCount":    len(site.Gallery.Snapshot()),
	})
}

// AuthRequired 是一个简单的认证中间件。JSON 接口返回 401，页面跳转到登录页。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
