package handler

import (
	"net/http"
	"strings"

	"github.com/advisorsite/internal/db"
	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
)

type heroPayload struct {
	Title       *string        `json:"title"`
	Subtitle    *string        `json:"subtitle"`
	Description *string        `json:"description"`
	TrustedText *string        `json:"trustedText"`
	Status      *string        `json:"status"`
	Colors      *db.HeroColors `json:"colors"`
}

func (p heroPayload) toInput() service.HeroInput {
	return service.HeroInput{
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		TrustedText: p.TrustedText,
		Status:      p.Status,
		Colors:      p.Colors,
	}
}

type slidePayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Status      *string `json:"status"`
}

func (p slidePayload) toInput() service.SlideInput {
	return service.SlideInput{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Status:      p.Status,
	}
}

// ShowHeroManagement 渲染首屏文案列表。
func (a *API) ShowHeroManagement(c *gin.Context) {
	hero := a.site.Hero
	if err := hero.EnsureLoaded(c.Request.Context()); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "hero_list.html", gin.H{
			"title": "Hero sections",
			"error": service.Message(err),
		})
		return
	}

	current, published := hero.Current()
	a.renderHTML(c, http.StatusOK, "hero_list.html", gin.H{
		"title":      "Hero sections",
		"sections":   hero.Snapshot(),
		"current":    current,
		"hasCurrent": published,
		"loading":    hero.Loading(),
		"lastError":  hero.LastError(),
	})
}

// ShowHeroEdit 渲染首屏编辑页，:id 为 new 时进入新建模式。
func (a *API) ShowHeroEdit(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("id"))
	if raw == "new" {
		placeholder := service.PlaceholderHero(a.site.Content)
		a.renderHTML(c, http.StatusOK, "hero_edit.html", gin.H{
			"title":   "New hero section",
			"isNew":   true,
			"section": db.HeroSection{Status: db.StatusDraft, Colors: placeholder.Colors},
		})
		return
	}

	id, err := parseUintParam(c, "id")
	if err != nil || id == 0 {
		a.renderHTML(c, http.StatusBadRequest, "hero_edit.html", gin.H{
			"title": "Hero section",
			"error": "invalid hero section id",
		})
		return
	}

	section, err := a.site.Hero.Get(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if isNotFound(err) {
			status = http.StatusNotFound
		}
		a.renderHTML(c, status, "hero_edit.html", gin.H{
			"title": "Hero section",
			"error": service.Message(err),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "hero_edit.html", gin.H{
		"title":   "Edit hero section",
		"isNew":   false,
		"section": section,
	})
}

// ListHeroSections returns every hero section, newest first.
func (a *API) ListHeroSections(c *gin.Context) {
	listItems(c, a.site.Hero.Collection)
}

// GetHeroSection returns one hero section.
func (a *API) GetHeroSection(c *gin.Context) {
	getItem(c, a.site.Hero.Collection)
}

// CreateHeroSection 新建首屏文案，始终为草稿状态。
func (a *API) CreateHeroSection(c *gin.Context) {
	var payload heroPayload
	if !bindJSON(c, &payload, "invalid hero section") {
		return
	}

	section, err := a.site.Hero.Create(c.Request.Context(), payload.toInput())
	respondItem(c, http.StatusCreated, section, err, "failed to create hero section")
}

// UpdateHeroSection applies a partial edit.
func (a *API) UpdateHeroSection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload heroPayload
	if !bindJSON(c, &payload, "invalid hero section") {
		return
	}

	section, err := a.site.Hero.Update(c.Request.Context(), id, payload.toInput())
	respondItem(c, http.StatusOK, section, err, "failed to update hero section")
}

// DeleteHeroSection removes a hero section.
func (a *API) DeleteHeroSection(c *gin.Context) {
	deleteItem(c, a.site.Hero, "hero section")
}

// PublishHeroSection makes the section the public hero.
func (a *API) PublishHeroSection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	section, err := a.site.Hero.Publish(c.Request.Context(), id)
	respondItem(c, http.StatusOK, section, err, "failed to publish hero section")
}

// UnpublishHeroSection returns the section to draft.
func (a *API) UnpublishHeroSection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	section, err := a.site.Hero.Unpublish(c.Request.Context(), id)
	respondItem(c, http.StatusOK, section, err, "failed to unpublish hero section")
}

// ShowSlideManagement 渲染轮播图管理页。
func (a *API) ShowSlideManagement(c *gin.Context) {
	slides := a.site.Slides
	if err := slides.EnsureLoaded(c.Request.Context()); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "slides.html", gin.H{
			"title": "Hero slides",
			"error": service.Message(err),
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "slides.html", gin.H{
		"title":     "Hero slides",
		"slides":    slides.Snapshot(),
		"lastError": slides.LastError(),
	})
}

// ListSlides returns all slides in display order, drafts included.
func (a *API) ListSlides(c *gin.Context) {
	listItems(c, a.site.Slides.Collection)
}

// GetSlide returns one slide.
func (a *API) GetSlide(c *gin.Context) {
	getItem(c, a.site.Slides.Collection)
}

// CreateSlide appends a draft slide.
func (a *API) CreateSlide(c *gin.Context) {
	var payload slidePayload
	if !bindJSON(c, &payload, "invalid hero slide") {
		return
	}

	slide, err := a.site.Slides.Create(c.Request.Context(), payload.toInput())
	respondItem(c, http.StatusCreated, slide, err, "failed to create hero slide")
}

// UpdateSlide applies a partial edit.
func (a *API) UpdateSlide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload slidePayload
	if !bindJSON(c, &payload, "invalid hero slide") {
		return
	}

	slide, err := a.site.Slides.Update(c.Request.Context(), id, payload.toInput())
	respondItem(c, http.StatusOK, slide, err, "failed to update hero slide")
}

// DeleteSlide removes a slide and closes the gap in the order.
func (a *API) DeleteSlide(c *gin.Context) {
	deleteItem(c, a.site.Slides, "hero slide")
}

// PublishSlide shows the slide in the public slider.
func (a *API) PublishSlide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	slide, err := a.site.Slides.Publish(c.Request.Context(), id)
	respondItem(c, http.StatusOK, slide, err, "failed to publish hero slide")
}

// UnpublishSlide hides the slide.
func (a *API) UnpublishSlide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	slide, err := a.site.Slides.Unpublish(c.Request.Context(), id)
	respondItem(c, http.StatusOK, slide, err, "failed to unpublish hero slide")
}

// ReorderSlides moves a slide by drag and drop.
func (a *API) ReorderSlides(c *gin.Context) {
	reorderItems(c, a.site.Slides.OrderedCollection)
}
