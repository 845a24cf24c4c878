package handler

import (
	"bytes"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// sseKeepAlive 控制 SSE 连接的心跳间隔，避免代理关闭空闲连接。
var sseKeepAlive = 25 * time.Second

// RenderMarkdown 将 Markdown 渲染为经过清洗的 HTML。
func RenderMarkdown(source string) template.HTML {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// ShowHome 渲染公开首页，所有栏目都来自缓存或默认内容。
func (a *API) ShowHome(c *gin.Context) {
	content, err := a.publicContent(c.Request.Context())
	if err != nil {
		a.logger.Warn("build public content failed", zap.Error(err))
		content = a.site.Public()
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"title":       content.Settings.SEOTitle,
		"content":     content,
		"aboutHTML":   RenderMarkdown(content.About.Body),
		"aboutShort":  service.Summarize(content.About.Body, 160),
		"year":        time.Now().Year(),
		"hasServices": len(content.Services) > 0,
	})
}

// GetPublicContent returns the same data as the home page as JSON.
func (a *API) GetPublicContent(c *gin.Context) {
	content, err := a.publicContent(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to load site content")
		return
	}
	c.JSON(http.StatusOK, content)
}

// StreamContentEvents 通过 SSE 推送内容变更事件，前端收到后重新拉取数据。
func (a *API) StreamContentEvents(c *gin.Context) {
	if a.hub == nil {
		respondError(c, http.StatusServiceUnavailable, "change notifications are disabled")
		return
	}

	events, cancel := a.hub.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.SSEvent("ready", gin.H{"at": time.Now().UTC()})
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("content", ev)
			return true
		case at := <-ticker.C:
			c.SSEvent("ping", gin.H{"at": at.UTC()})
			return true
		}
	})
}
