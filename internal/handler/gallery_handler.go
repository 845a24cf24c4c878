package handler

import (
	"net/http"
	"strings"

	"github.com/advisorsite/internal/service"
	"github.com/gin-gonic/gin"
)

type galleryPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	ImageWidth  *int    `json:"imageWidth"`
	ImageHeight *int    `json:"imageHeight"`
	Category    *string `json:"category"`
}

func (p galleryPayload) toInput() service.GalleryInput {
	return service.GalleryInput{
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		ImageWidth:  p.ImageWidth,
		ImageHeight: p.ImageHeight,
		Category:    p.Category,
	}
}

// ListGalleryImages returns gallery images, optionally filtered and paginated
// with ?search=&category=&page=&perPage=.
func (a *API) ListGalleryImages(c *gin.Context) {
	gallery := a.site.Gallery
	if err := gallery.EnsureLoaded(c.Request.Context()); err != nil {
		respondServiceError(c, err, "failed to load gallery")
		return
	}

	result := gallery.List(service.GalleryFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		Page:     parseIntQuery(c, "page", 1),
		PerPage:  parseIntQuery(c, "perPage", 0),
	})

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
		"categories": gallery.Categories(),
		"lastError":  gallery.LastError(),
	})
}

// CreateGalleryImage creates a new gallery image.
func (a *API) CreateGalleryImage(c *gin.Context) {
	var payload galleryPayload
	if !bindJSON(c, &payload, "invalid gallery image") {
		return
	}

	item, err := a.site.Gallery.Create(c.Request.Context(), payload.toInput())
	respondItem(c, http.StatusCreated, item, err, "failed to create gallery image")
}

// UpdateGalleryImage updates an existing gallery image.
func (a *API) UpdateGalleryImage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var payload galleryPayload
	if !bindJSON(c, &payload, "invalid gallery image") {
		return
	}

	item, err := a.site.Gallery.Update(c.Request.Context(), id, payload.toInput())
	respondItem(c, http.StatusOK, item, err, "failed to update gallery image")
}

// DeleteGalleryImage removes a gallery image.
func (a *API) DeleteGalleryImage(c *gin.Context) {
	deleteItem(c, a.site.Gallery, "gallery image")
}

// ReorderGalleryImages handles drag and drop.
func (a *API) ReorderGalleryImages(c *gin.Context) {
	reorderItems(c, a.site.Gallery.OrderedCollection)
}
